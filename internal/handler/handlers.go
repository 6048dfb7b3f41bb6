package handler

import (
	"github.com/MKhiriev/daybook/internal/config"
	"github.com/MKhiriev/daybook/internal/handler/http"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers enabled by cfg. The status API
// signs its responses with app.HashKey when one is set.
func NewHandlers(services *service.Services, cfg config.Server, app config.App, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, app.HashKey, logger),
	}, nil
}
