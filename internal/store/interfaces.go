package store

import (
	"context"

	"github.com/MKhiriev/go-item-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts.
//
// Lookups that match nothing return [ErrNoUserWasFound]; a duplicate email
// returns [ErrEmailAlreadyExists]; transient failures wrap
// [ErrStoreUnavailable].
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// UpdateUser applies the non-nil fields of patch and returns the stored
	// result. An empty patch returns the account unchanged.
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)
	// DeleteUser removes the account together with every item it owns.
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context, page models.Page) (models.UserList, error)
}

// ItemRepository persists items. Lookups that match nothing return
// [ErrItemNotFound].
type ItemRepository interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	FindItemByID(ctx context.Context, id int64) (models.Item, error)
	UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) (models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	// ListItems returns every item, unfiltered.
	ListItems(ctx context.Context, page models.Page) (models.ItemList, error)
	ListItemsForOwner(ctx context.Context, ownerID int64, page models.Page) (models.ItemList, error)
}

// ErrorClassificator maps driver errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
