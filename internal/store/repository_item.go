package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/models"
)

// itemRepository is the SQL implementation of [ItemRepository].
type itemRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewItemRepository constructs an [ItemRepository] backed by db.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

// CreateItem inserts item and returns the stored row. An unknown owner
// yields [ErrOwnerNotFound].
func (r *itemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertItemQuery(r.db.builder, item)
	if err != nil {
		return models.Item{}, err
	}

	created, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.CreateItem").Int64("owner_id", item.OwnerID).Msg("error creating item")
		return models.Item{}, r.db.wrapError(err, nil)
	}

	return created, nil
}

func (r *itemRepository) FindItemByID(ctx context.Context, id int64) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemQuery(r.db.builder, id)
	if err != nil {
		return models.Item{}, err
	}

	item, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.FindItemByID").Int64("item_id", id).Msg("error finding item")
		return models.Item{}, r.db.wrapError(err, nil)
	}

	return item, nil
}

// UpdateItem applies patch. An empty patch returns the item unchanged.
func (r *itemRepository) UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) (models.Item, error) {
	log := logger.FromContext(ctx)

	if patch.IsEmpty() {
		return r.FindItemByID(ctx, id)
	}

	query, args, err := buildUpdateItemQuery(r.db.builder, id, patch)
	if err != nil {
		return models.Item{}, err
	}

	item, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.UpdateItem").Int64("item_id", id).Msg("error updating item")
		return models.Item{}, r.db.wrapError(err, nil)
	}

	return item, nil
}

func (r *itemRepository) DeleteItem(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, itemsTable, id, ErrItemNotFound)
}

func (r *itemRepository) ListItems(ctx context.Context, page models.Page) (models.ItemList, error) {
	return r.listItems(ctx, nil, page)
}

func (r *itemRepository) ListItemsForOwner(ctx context.Context, ownerID int64, page models.Page) (models.ItemList, error) {
	return r.listItems(ctx, sq.Eq{"owner_id": ownerID}, page)
}

func (r *itemRepository) listItems(ctx context.Context, where sq.Sqlizer, page models.Page) (models.ItemList, error) {
	log := logger.FromContext(ctx)

	count, err := countRows(ctx, r.db, itemsTable, where)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.listItems").Msg("error counting items")
		return models.ItemList{}, err
	}

	query, args, err := buildListQuery(r.db.builder, itemsTable, itemColumns, where, page)
	if err != nil {
		return models.ItemList{}, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.listItems").Msg("error listing items")
		return models.ItemList{}, r.db.wrapError(err, nil)
	}
	defer rows.Close()

	items := make([]models.Item, 0, page.Normalize().Limit)
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*itemRepository.listItems").Msg("error scanning item row")
			return models.ItemList{}, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return models.ItemList{}, r.db.wrapError(err, nil)
	}

	return models.ItemList{Data: items, Count: count}, nil
}

func scanItem(row rowScanner) (models.Item, error) {
	var (
		it          models.Item
		description sql.NullString
	)
	if err := row.Scan(&it.ItemID, &it.Title, &description, &it.OwnerID, &it.CreatedAt); err != nil {
		return models.Item{}, err
	}
	if description.Valid {
		it.Description = &description.String
	}
	return it, nil
}
