package service

import (
	"context"

	"github.com/MKhiriev/go-item-keeper/internal/config"
	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/models"
)

// versionService reports what binary is serving requests. Everything it
// returns is fixed when the process starts.
type versionService struct {
	info models.VersionInfo
}

// NewAppInfoService pairs the configured release version with the linker
// supplied build metadata. A deployment without APP_VERSION is refused with
// ErrVersionIsNotSpecified, since /version would otherwise report nothing.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	info := models.VersionInfo{
		Version:      cfg.Version,
		BuildVersion: build.BuildVersion(),
		BuildDate:    build.BuildDate(),
		BuildCommit:  build.BuildCommit(),
	}
	logger.Info().
		Str("version", info.Version).
		Str("build_commit", info.BuildCommit).
		Msg("item keeper version resolved")

	return &versionService{info: info}, nil
}

func (s *versionService) GetAppVersion(context.Context) string {
	return s.info.Version
}

func (s *versionService) GetVersionInfo(context.Context) models.VersionInfo {
	return s.info
}
