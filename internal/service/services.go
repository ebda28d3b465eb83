package service

import (
	"fmt"

	"github.com/MKhiriev/go-item-keeper/internal/config"
	"github.com/MKhiriev/go-item-keeper/internal/crypto"
	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/internal/policy"
	"github.com/MKhiriev/go-item-keeper/internal/store"
	"github.com/MKhiriev/go-item-keeper/internal/utils"
	"github.com/MKhiriev/go-item-keeper/internal/validators"
	"github.com/MKhiriev/go-item-keeper/models"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	ItemService    ItemService
	AppInfoService AppInfoService
}

// NewServices builds the hasher, token codec and policy engine from cfg and
// wires them into every service.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	hasher, err := crypto.NewBcryptHasher(cfg.App.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("error creating password hasher: %w", err)
	}

	codec, err := utils.NewTokenCodec(cfg.App.TokenSignKey, cfg.App.TokenIssuer)
	if err != nil {
		return nil, fmt.Errorf("error creating token codec: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	engine := policy.NewEngine()
	validator := validators.NewPayloadValidator()

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, hasher, codec, validator, cfg.App.TokenDuration, logger),
		UserService:    NewUserService(storages.UserRepository, hasher, engine, validator, logger),
		ItemService:    NewItemService(storages.ItemRepository, engine, validator, logger),
		AppInfoService: appInfo,
	}, nil
}
