package http

import (
	_ "embed"
	"net/http"

	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/signals/internal/domain"
	websocketTransport "github.com/kahvecikaan/signals/internal/transport/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed swagger.yaml
var swaggerSpec []byte

func NewRouter(
	uh *UnitHandler,
	validator *domain.Validation,
	logger hclog.Logger,
	wsh *websocketTransport.Handler,
	gatherer prometheus.Gatherer,
) http.Handler {
	router := mux.NewRouter()

	mw := NewMiddleware(logger, validator, nil) // nil for default CORS config

	router.Use(mw.LoggingMiddleware)
	router.Use(mw.CORSMiddleware)
	router.Use(mw.ContentTypeMiddleware)

	router.HandleFunc("/units", uh.ListUnits).Methods("GET")
	router.HandleFunc("/units/{id:[0-9]+}", uh.GetUnit).Methods("GET")
	router.HandleFunc("/units/{id:[0-9]+}", uh.RemoveUnit).Methods("DELETE")
	router.HandleFunc("/units/{id:[0-9]+}/ws", wsh.HandleWebSocket).Methods("GET")
	router.Handle("/units/{id:[0-9]+}/replay", GzipMiddleware(http.HandlerFunc(uh.GetReplay))).Methods("GET")

	// Routes with a validated request body
	validateSpawn := ValidationMiddleware[domain.SpawnRequest](mw, ContextKeySpawn)
	validateWalk := ValidationMiddleware[domain.WalkRequest](mw, ContextKeyWalk)
	router.Handle("/units", validateSpawn(http.HandlerFunc(uh.SpawnUnit))).Methods("POST")
	router.Handle("/units/{id:[0-9]+}/walk", validateWalk(http.HandlerFunc(uh.WalkUnit))).Methods("POST")

	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")

	router.HandleFunc("/swagger.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(swaggerSpec)
	}).Methods("GET")

	redoc := middleware.Redoc(middleware.RedocOpts{SpecURL: "/swagger.yaml"}, nil)
	router.Handle("/docs", redoc).Methods("GET")

	return mw.RecoveryMiddleware(router)
}
