package server

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/handler"
	"github.com/MKhiriev/go-tours/internal/logger"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

// NewServer creates the HTTP server and, when a gRPC address is configured,
// the gRPC health server.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		gRPCServer, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.gRPCServer = gRPCServer
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// RunServer serves until SIGTERM, SIGINT or SIGQUIT arrives or one of the
// servers fails, then shuts all of them down.
func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.run(ctx)
}

func (s *server) Shutdown() {
	// finish HTTP server
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown()
	}
}

func (s *server) run(ctx context.Context) error {
	// check if any server was created
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersAreCreated
	}

	var runners []func() error
	if s.httpServer != nil {
		s.logger.Info().Msg("Launching HTTP server")
		runners = append(runners, s.httpServer.RunServer)
	}
	if s.gRPCServer != nil {
		s.logger.Info().Msg("Launching GRPC server")
		runners = append(runners, s.gRPCServer.RunServer)
	}

	errs := make(chan error, len(runners))
	for _, run := range runners {
		go func() {
			errs <- run()
		}()
	}

	var failure error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case failure = <-errs:
		s.logger.Err(failure).Msg("server stopped unexpectedly")
	}

	// finish started servers
	s.Shutdown()

	// wait for the remaining runners to return
	received := 0
	if failure != nil {
		received = 1
	}
	for ; received < len(runners); received++ {
		failure = errors.Join(failure, <-errs)
	}

	if failure == nil {
		s.logger.Info().Msg("server Shutdown gracefully")
	}

	return failure
}
