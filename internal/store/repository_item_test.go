package store

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/models"
)

func newTestItemRepo(t *testing.T) (ItemRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewItemRepository(db, logger.Nop()), mock
}

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows(itemColumns)
}

func strPtr(s string) *string { return &s }

func TestCreateItem_Success(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	item := models.Item{Title: "book", Description: strPtr("paper"), OwnerID: 4}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO items (title,description,owner_id) VALUES ($1,$2,$3) RETURNING id, title, description, owner_id, created_at")).
		WithArgs("book", "paper", int64(4)).
		WillReturnRows(itemRows().AddRow(10, "book", "paper", 4, testCreatedAt))

	created, err := repo.CreateItem(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ItemID)
	assert.Equal(t, int64(4), created.OwnerID)
	require.NotNil(t, created.Description)
	assert.Equal(t, "paper", *created.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateItem_NullDescription(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery("INSERT INTO items").
		WithArgs("book", nil, int64(4)).
		WillReturnRows(itemRows().AddRow(10, "book", nil, 4, testCreatedAt))

	created, err := repo.CreateItem(context.Background(), models.Item{Title: "book", OwnerID: 4})
	require.NoError(t, err)
	assert.Nil(t, created.Description)
}

func TestCreateItem_UnknownOwner(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery("INSERT INTO items").WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.CreateItem(context.Background(), models.Item{Title: "book", OwnerID: 404})
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestCreateItem_ValueRejected(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery("INSERT INTO items").WillReturnError(pgError(pgerrcode.StringDataRightTruncationDataException))

	_, err := repo.CreateItem(context.Background(), models.Item{Title: strings.Repeat("t", 300), OwnerID: 4})
	assert.ErrorIs(t, err, ErrValueRejected)
	assert.NotErrorIs(t, err, ErrExecutingQuery)
}

func TestFindItemByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestItemRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, owner_id, created_at FROM items WHERE id = $1")).
			WithArgs(int64(10)).
			WillReturnRows(itemRows().AddRow(10, "book", nil, 4, testCreatedAt))

		item, err := repo.FindItemByID(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, "book", item.Title)
		assert.Nil(t, item.Description)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTestItemRepo(t)
		mock.ExpectQuery("FROM items").WillReturnRows(itemRows())

		_, err := repo.FindItemByID(context.Background(), 10)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("transient", func(t *testing.T) {
		repo, mock := newTestItemRepo(t)
		mock.ExpectQuery("FROM items").WillReturnError(context.DeadlineExceeded)

		_, err := repo.FindItemByID(context.Background(), 10)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

func TestUpdateItem_ClearsDescriptionWithNull(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	patch := models.ItemPatch{Description: models.Null[string]()}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE items SET description = $1 WHERE id = $2")).
		WithArgs(nil, int64(10)).
		WillReturnRows(itemRows().AddRow(10, "book", nil, 4, testCreatedAt))

	item, err := repo.UpdateItem(context.Background(), 10, patch)
	require.NoError(t, err)
	assert.Nil(t, item.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateItem_TitleOnlyLeavesDescription(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	patch := models.ItemPatch{Title: strPtr("novel")}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE items SET title = $1 WHERE id = $2")).
		WithArgs("novel", int64(10)).
		WillReturnRows(itemRows().AddRow(10, "novel", "kept", 4, testCreatedAt))

	item, err := repo.UpdateItem(context.Background(), 10, patch)
	require.NoError(t, err)
	assert.Equal(t, "novel", item.Title)
	require.NotNil(t, item.Description)
	assert.Equal(t, "kept", *item.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateItem_Missing(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery("UPDATE items").WillReturnRows(itemRows())

	_, err := repo.UpdateItem(context.Background(), 10, models.ItemPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteItem(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM items WHERE id = $1")).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteItem(context.Background(), 10), ErrItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListItemsForOwner_Filtered(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM items WHERE owner_id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM items WHERE owner_id = $1 ORDER BY id LIMIT 100 OFFSET 0")).
		WithArgs(int64(4)).
		WillReturnRows(itemRows().AddRow(10, "book", nil, 4, testCreatedAt))

	list, err := repo.ListItemsForOwner(context.Background(), 4, models.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	require.Len(t, list.Data, 1)
	assert.Equal(t, int64(4), list.Data[0].OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListItems_Unfiltered(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM items")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("FROM items ORDER BY id LIMIT 1000 OFFSET 0")).
		WillReturnRows(itemRows().
			AddRow(10, "book", nil, 4, testCreatedAt).
			AddRow(11, "pen", "blue", 5, testCreatedAt))

	list, err := repo.ListItems(context.Background(), models.Page{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)
	assert.Len(t, list.Data, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
