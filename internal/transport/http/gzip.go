package http

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// GzipMiddleware compresses responses when the client accepts gzip
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gw := newGzipResponseWriter(w)
		defer gw.Close()

		gw.Header().Set("Content-Encoding", "gzip")
		next.ServeHTTP(gw, r)
	})
}

// gzipResponseWriter compresses everything written through it
type gzipResponseWriter struct {
	rw http.ResponseWriter
	gw *gzip.Writer
}

func newGzipResponseWriter(rw http.ResponseWriter) *gzipResponseWriter {
	return &gzipResponseWriter{rw: rw, gw: gzip.NewWriter(rw)}
}

func (g *gzipResponseWriter) Header() http.Header {
	return g.rw.Header()
}

func (g *gzipResponseWriter) Write(d []byte) (int, error) {
	return g.gw.Write(d)
}

// WriteHeader drops any Content-Length set by the handler since it would
// describe the uncompressed body
func (g *gzipResponseWriter) WriteHeader(statusCode int) {
	g.rw.Header().Del("Content-Length")
	g.rw.WriteHeader(statusCode)
}

// Close flushes the remaining compressed data
func (g *gzipResponseWriter) Close() error {
	return g.gw.Close()
}
