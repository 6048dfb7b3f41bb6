package http

import (
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/service"
)

type Handler struct {
	sync    service.SyncService
	appInfo service.AppInfoService
	hashKey string

	logger *logger.Logger
}

// NewHandler returns a handler over the sync and app-info services. A
// non-empty hashKey makes every response carry a HashSHA256 signature.
func NewHandler(services *service.Services, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		sync:    services.Sync,
		appInfo: services.AppInfo,
		hashKey: hashKey,
		logger:  logger,
	}
}
