package grpc

import (
	"net"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/signals/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health check service reporting whether any unit is
// still walking
const ServiceName = "arena"

// Server exposes the arena's health over gRPC
type Server struct {
	gs     *grpc.Server
	health *health.Server
	logger hclog.Logger
	cancel func()
}

func NewServer(logger hclog.Logger, arena service.ArenaService) *Server {
	gs := grpc.NewServer()
	hs := health.NewServer()

	healthpb.RegisterHealthServer(gs, hs)

	// Register the reflection service for debugging and introspection
	reflection.Register(gs)

	s := &Server{gs: gs, health: hs, logger: logger}
	s.cancel = arena.WatchStatus(s.statusChanged)
	return s
}

func (s *Server) statusChanged(st service.Status) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if st.Active > 0 {
		status = healthpb.HealthCheckResponse_SERVING
	}

	s.logger.Debug("Arena status changed", "units", st.Units, "active", st.Active, "health", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve accepts connections on lis until GracefulStop is called
func (s *Server) Serve(lis net.Listener) error {
	return s.gs.Serve(lis)
}

// GracefulStop stops watching the arena, marks every service NOT_SERVING and
// waits for pending RPCs to finish
func (s *Server) GracefulStop() {
	s.cancel()
	s.health.Shutdown()
	s.gs.GracefulStop()
}

// Stop closes every connection at once
func (s *Server) Stop() {
	s.cancel()
	s.gs.Stop()
}
