package service

import (
	"context"

	"github.com/MKhiriev/go-item-keeper/internal/config"
	"github.com/MKhiriev/go-item-keeper/models"
)

// AuthService turns credentials into tokens and tokens into principals.
type AuthService interface {
	// RegisterUser creates a regular, active account from a public signup.
	RegisterUser(ctx context.Context, in models.UserCreate) (models.User, error)
	// Authenticate checks an email/password pair. It does not look at the
	// active flag.
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	// Login authenticates, rejects inactive accounts and issues a token.
	Login(ctx context.Context, email, password string) (models.Token, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// ResolvePrincipal loads the live account a token was issued for.
	ResolvePrincipal(ctx context.Context, tokenString string) (models.User, error)
	// BootstrapSuperuser creates the configured superuser unless an account
	// with its email already exists.
	BootstrapSuperuser(ctx context.Context, su config.Superuser) (models.User, error)
}

// UserService manages accounts on behalf of an authenticated principal.
type UserService interface {
	ListUsers(ctx context.Context, principal models.User, page models.Page) (models.UserList, error)
	GetUser(ctx context.Context, principal models.User, id int64) (models.User, error)
	CreateUser(ctx context.Context, principal models.User, in models.UserCreate) (models.User, error)
	UpdateUser(ctx context.Context, principal models.User, id int64, patch models.UserPatch) (models.User, error)
	UpdatePassword(ctx context.Context, principal models.User, in models.PasswordUpdate) error
	DeleteUser(ctx context.Context, principal models.User, id int64) error
}

// ItemService manages items on behalf of an authenticated principal.
type ItemService interface {
	ListItems(ctx context.Context, principal models.User, page models.Page) (models.ItemList, error)
	GetItem(ctx context.Context, principal models.User, id int64) (models.Item, error)
	CreateItem(ctx context.Context, principal models.User, in models.ItemCreate) (models.Item, error)
	UpdateItem(ctx context.Context, principal models.User, id int64, patch models.ItemPatch) (models.Item, error)
	DeleteItem(ctx context.Context, principal models.User, id int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetVersionInfo(ctx context.Context) models.VersionInfo
}
