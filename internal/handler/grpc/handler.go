package grpc

import (
	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Handler is the root gRPC transport handler.
//
// It owns the health service and the interceptor chain. Every method except
// the health checks requires a bearer token in the "authorization" metadata.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] over the service container.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
}

// ServerOptions returns the interceptor chain to pass to [grpc.NewServer].
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.withTraceIDUnary, h.withLoggingUnary, h.authUnary),
		grpc.ChainStreamInterceptor(h.withTraceIDStream, h.authStream),
	}
}

// Register attaches the health and reflection services to srv and marks the
// server as serving.
func (h *Handler) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, h.health)
	reflection.Register(srv)

	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}

// Shutdown flips every health status to NOT_SERVING so that health checks fail
// before the listener closes.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
