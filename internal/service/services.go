package service

import (
	"github.com/MKhiriev/go-profile-keeper/internal/config"
	"github.com/MKhiriev/go-profile-keeper/internal/files"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/internal/session"
	"github.com/MKhiriev/go-profile-keeper/internal/store"
	"github.com/MKhiriev/go-profile-keeper/internal/utils"
	"github.com/MKhiriev/go-profile-keeper/models"
)

type Services struct {
	AuthService    AuthService
	ProfileService ProfileService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cache session.Cache, sink files.Sink, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	auth := NewAuthValidationService().Wrap(
		NewAuthService(storages.CredentialStore, storages.ProfileStore, storages.TokenStore, cache, sink, utils.NewTokenGenerator(), logger),
	)

	return &Services{
		AuthService:    auth,
		ProfileService: NewProfileService(auth, storages.ProfileStore, sink, logger),
		AppInfoService: appInfo,
	}, nil
}
