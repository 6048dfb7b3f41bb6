package service

import (
	"context"

	"github.com/MKhiriev/daybook/internal/config"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/models"
)

type appInfoService struct {
	build models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService fails with ErrVersionIsNotSpecified when cfg.Version is
// empty. build carries the -ldflags metadata; its version is replaced by
// cfg.Version.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	build.Version = cfg.Version
	return &appInfoService{
		build:  build,
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.build.Version
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.build
}
