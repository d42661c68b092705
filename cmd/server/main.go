package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/signals/internal/config"
	"github.com/kahvecikaan/signals/internal/domain"
	"github.com/kahvecikaan/signals/internal/metrics"
	"github.com/kahvecikaan/signals/internal/repository"
	"github.com/kahvecikaan/signals/internal/service"
	"github.com/kahvecikaan/signals/internal/storage"
	grpcTransport "github.com/kahvecikaan/signals/internal/transport/grpc"
	httpTransport "github.com/kahvecikaan/signals/internal/transport/http"
	websocketTransport "github.com/kahvecikaan/signals/internal/transport/websocket"
	"github.com/nicholasjackson/env"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// Environment variables
var (
	bindAddress = env.String("BIND_ADDRESS", false,
		":9090", "Bind address for the server")
	grpcAddress = env.String("GRPC_ADDRESS", false,
		":9092", "Bind address for the gRPC health server")
	logLevel = env.String("LOG_LEVEL", false,
		"debug", "Log output level for the server [debug, info, trace]")
	replayPath = env.String("REPLAY_PATH", false,
		"./replays", "Directory replays are written to")
	replayMaxBytes = env.Int("REPLAY_MAX_BYTES", false,
		1<<20, "Maximum size of a replay file in bytes")
	tickInterval = env.String("TICK_INTERVAL", false,
		"0", "Interval at which every unit walks one step, 0 disables the clock")
	scenarioFile = env.String("SCENARIO_FILE", false,
		"", "YAML file with the arena rules and the units spawned at start up")
)

func main() {
	if err := env.Parse(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "arena",
		Level: hclog.LevelFromString(*logLevel),
	})

	if err := run(logger); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger hclog.Logger) error {
	interval, err := time.ParseDuration(*tickInterval)
	if err != nil {
		return fmt.Errorf("invalid TICK_INTERVAL: %w", err)
	}

	validator := domain.NewValidation()

	scenario, err := config.LoadScenario(*scenarioFile, validator)
	if err != nil {
		return err
	}
	logger.Debug("Scenario loaded", "rules", scenario.Rules, "units", len(scenario.Units))

	store, err := storage.NewLocal(*replayPath, int64(*replayMaxBytes))
	if err != nil {
		return fmt.Errorf("unable to create replay storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	arena := service.NewArenaService(
		logger.Named("arena-service"),
		repository.NewMemoryUnitRepository(),
		store,
		m,
		scenario.Rules,
	)
	defer arena.Close()

	for _, req := range scenario.Units {
		if _, err := arena.Spawn(context.Background(), req); err != nil {
			return fmt.Errorf("unable to spawn %q: %w", req.Name, err)
		}
	}

	if interval > 0 {
		clock := service.NewClock(logger.Named("clock"), arena, m, interval)
		clock.Start()
		defer clock.Close()
	}

	uh := httpTransport.NewUnitHandler(arena, logger.Named("http-handler"))
	wh := websocketTransport.NewHandler(logger.Named("websocket-handler"), arena)
	router := httpTransport.NewRouter(uh, validator, logger, wh, reg)

	server := &http.Server{
		Addr:         *bindAddress,
		Handler:      router,
		ErrorLog:     logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	gs := grpcTransport.NewServer(logger.Named("grpc"), arena)
	lis, err := net.Listen("tcp", *grpcAddress)
	if err != nil {
		return fmt.Errorf("unable to create listener: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", "bind_address", *bindAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting gRPC server", "bind_address", *grpcAddress)
		if err := gs.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			gs.GracefulStop()
			close(stopped)
		}()

		err := server.Shutdown(shutdownCtx)

		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			logger.Warn("Graceful gRPC shutdown timed out, forcing stop")
			gs.Stop()
		}
		return err
	})

	return g.Wait()
}
