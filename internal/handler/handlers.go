package handler

import (
	"github.com/MKhiriev/go-item-keeper/internal/config"
	"github.com/MKhiriev/go-item-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-item-keeper/internal/handler/http"
	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/internal/service"
)

// Handlers holds one handler per enabled transport. A transport is enabled
// by a non-empty address in [config.Server]; a nil field means disabled.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().
		Bool("http", cfg.HTTPAddress != "").
		Bool("grpc", cfg.GRPCAddress != "").
		Msg("creating transport handlers")

	var handlers Handlers
	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoTransportEnabled
	}
	return &handlers, nil
}
