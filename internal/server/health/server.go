// Package health runs the standard gRPC health service for the blog server.
// Status follows the repository backend: SERVING while Ping succeeds.
package health

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported alongside the overall ("") status.
const ServiceName = "gophblog.Blog"

const defaultProbeInterval = 10 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	address       string
	storage       Pinger
	logger        logging.Logger
	probeInterval time.Duration
	health        *grpchealth.Server
}

func NewServer(address string, storage Pinger, l logging.Logger) *Server {
	return &Server{
		address:       address,
		storage:       storage,
		logger:        l.With("module", "grpc_health"),
		probeInterval: defaultProbeInterval,
		health:        grpchealth.NewServer(),
	}
}

func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve registers the health service on listen and blocks until ctx is done.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.probe(ctx)

	go func() {
		ticker := time.NewTicker(s.probeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC health server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-ticker.C:
				s.probe(ctx)
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC health server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}

// probe pings storage and publishes the result for both service names.
func (s *Server) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.storage.Ping(pingCtx); err != nil {
		s.logger.Warn(ctx, "storage ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
