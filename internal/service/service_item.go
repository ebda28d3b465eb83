package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/internal/policy"
	"github.com/MKhiriev/go-item-keeper/internal/store"
	"github.com/MKhiriev/go-item-keeper/internal/validators"
	"github.com/MKhiriev/go-item-keeper/models"
)

type itemService struct {
	itemRepository store.ItemRepository
	engine         *policy.Engine
	validator      validators.Validator

	logger *logger.Logger
}

func NewItemService(
	itemRepository store.ItemRepository,
	engine *policy.Engine,
	validator validators.Validator,
	logger *logger.Logger,
) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		engine:         engine,
		validator:      validator,
		logger:         logger,
	}
}

// ListItems returns the items the principal may see: all of them for a
// superuser, its own otherwise.
func (s *itemService) ListItems(ctx context.Context, principal models.User, page models.Page) (models.ItemList, error) {
	if err := authorize(ctx, s.engine, principal, policy.ActionList, policy.Collection(policy.KindItem)); err != nil {
		return models.ItemList{}, err
	}

	var (
		items models.ItemList
		err   error
	)

	scope := s.engine.Scope(principal)
	if scope.Unfiltered() {
		items, err = s.itemRepository.ListItems(ctx, page)
	} else {
		items, err = s.itemRepository.ListItemsForOwner(ctx, *scope.OwnerID, page)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemService.ListItems").Msg("error listing items")
		return models.ItemList{}, fmt.Errorf("error listing items: %w", err)
	}

	return items, nil
}

func (s *itemService) GetItem(ctx context.Context, principal models.User, id int64) (models.Item, error) {
	return s.loadAuthorized(ctx, principal, policy.ActionRead, id)
}

// CreateItem stores a new item owned by the principal.
func (s *itemService) CreateItem(ctx context.Context, principal models.User, in models.ItemCreate) (models.Item, error) {
	if err := s.validator.Validate(ctx, in); err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := authorize(ctx, s.engine, principal, policy.ActionCreate, policy.Collection(policy.KindItem)); err != nil {
		return models.Item{}, err
	}

	created, err := s.itemRepository.CreateItem(ctx, models.Item{
		Title:       in.Title,
		Description: in.Description,
		OwnerID:     principal.UserID,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("owner_id", principal.UserID).Msg("error creating item")
		return models.Item{}, fmt.Errorf("error creating item: %w", mapStoreNotFound(err))
	}

	return created, nil
}

func (s *itemService) UpdateItem(ctx context.Context, principal models.User, id int64, patch models.ItemPatch) (models.Item, error) {
	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := s.loadAuthorized(ctx, principal, policy.ActionUpdate, id); err != nil {
		return models.Item{}, err
	}

	updated, err := s.itemRepository.UpdateItem(ctx, id, patch)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("item_id", id).Msg("error updating item")
		return models.Item{}, fmt.Errorf("error updating item: %w", mapStoreNotFound(err))
	}

	return updated, nil
}

func (s *itemService) DeleteItem(ctx context.Context, principal models.User, id int64) error {
	if _, err := s.loadAuthorized(ctx, principal, policy.ActionDelete, id); err != nil {
		return err
	}

	if err := s.itemRepository.DeleteItem(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Int64("item_id", id).Msg("error deleting item")
		return fmt.Errorf("error deleting item: %w", mapStoreNotFound(err))
	}

	return nil
}

func (s *itemService) loadAuthorized(ctx context.Context, principal models.User, action policy.Action, id int64) (models.Item, error) {
	item, err := s.itemRepository.FindItemByID(ctx, id)

	target := policy.Item(item.ItemID, item.OwnerID)
	switch {
	case errors.Is(err, store.ErrItemNotFound):
		target = policy.Missing(policy.KindItem)
	case err != nil:
		logger.FromContext(ctx).Err(err).Int64("item_id", id).Msg("item search by id failed")
		return models.Item{}, fmt.Errorf("item search by id failed: %w", err)
	}

	if err = authorize(ctx, s.engine, principal, action, target); err != nil {
		return models.Item{}, err
	}

	return item, nil
}
