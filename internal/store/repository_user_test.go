package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/models"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return newDB(conn, "pgx", sq.Dollar, NewPostgresErrorClassifier(), logger.Nop()), mock
}

func newTestUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewUserRepository(db, logger.Nop()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

var testCreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	user := models.User{Email: "alice@example.com", Username: "alice", PasswordHash: "hash", IsActive: true}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (email,username,password_hash,is_active,is_superuser) VALUES ($1,$2,$3,$4,$5) RETURNING id")).
		WithArgs(user.Email, user.Username, user.PasswordHash, true, false).
		WillReturnRows(userRows().AddRow(1, user.Email, user.Username, user.PasswordHash, true, false, testCreatedAt))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, user.Email, created.Email)
	assert.Equal(t, "hash", created.PasswordHash)
	assert.Equal(t, testCreatedAt, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("syntax"))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
}

func TestCreateUser_TransientErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"serialization failure", pgError(pgerrcode.SerializationFailure)},
		{"connection failure", pgError(pgerrcode.ConnectionFailure)},
		{"cannot connect now", pgError(pgerrcode.CannotConnectNow)},
		{"deadline exceeded", context.DeadlineExceeded},
		{"bad connection", sql.ErrConnDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)
			mock.ExpectQuery("INSERT INTO users").WillReturnError(tt.err)

			_, err := repo.CreateUser(context.Background(), models.User{Email: "alice@example.com"})
			assert.ErrorIs(t, err, ErrStoreUnavailable)
		})
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, username, password_hash, is_active, is_superuser, created_at FROM users WHERE email = $1")).
		WithArgs("alice@example.com").
		WillReturnRows(userRows().AddRow(7, "alice@example.com", "alice", "hash", true, false, testCreatedAt))

	user, err := repo.FindUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.True(t, user.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users WHERE id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(userRows())

	_, err := repo.FindUserByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindUserByID_CancelledContext(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users").WillReturnError(context.Canceled)

	_, err := repo.FindUserByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestUpdateUser_OnlyPresentFields(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	email := "new@example.com"
	active := false
	patch := models.UserPatch{Email: &email, IsActive: &active}

	// SetMap renders columns in sorted order
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET email = $1, is_active = $2 WHERE id = $3 RETURNING id")).
		WithArgs(email, false, int64(3)).
		WillReturnRows(userRows().AddRow(3, email, "bob", "hash", false, false, testCreatedAt))

	updated, err := repo.UpdateUser(context.Background(), 3, patch)
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)
	assert.False(t, updated.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_PlaintextPasswordIsNeverWritten(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	plain := "secret123"
	hash := "$2a$04$digest"
	patch := models.UserPatch{Password: &plain, PasswordHash: &hash}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET password_hash = $1 WHERE id = $2")).
		WithArgs(hash, int64(3)).
		WillReturnRows(userRows().AddRow(3, "bob@example.com", "bob", hash, true, false, testCreatedAt))

	_, err := repo.UpdateUser(context.Background(), 3, patch)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_EmptyPatchReadsRow(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(int64(3)).
		WillReturnRows(userRows().AddRow(3, "bob@example.com", "bob", "hash", true, false, testCreatedAt))

	user, err := repo.UpdateUser(context.Background(), 3, models.UserPatch{})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_NotFoundAndConflict(t *testing.T) {
	email := "taken@example.com"
	patch := models.UserPatch{Email: &email}

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery("UPDATE users").WillReturnRows(userRows())

		_, err := repo.UpdateUser(context.Background(), 99, patch)
		assert.ErrorIs(t, err, ErrNoUserWasFound)
	})

	t.Run("email conflict", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery("UPDATE users").WillReturnError(pgError(pgerrcode.UniqueViolation))

		_, err := repo.UpdateUser(context.Background(), 1, patch)
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteUser(context.Background(), 5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteUser(context.Background(), 5), ErrNoUserWasFound)
	})

	t.Run("transient", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec("DELETE FROM users").WillReturnError(pgError(pgerrcode.DeadlockDetected))

		assert.ErrorIs(t, repo.DeleteUser(context.Background(), 5), ErrStoreUnavailable)
	})
}

func TestListUsers(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY id LIMIT 2 OFFSET 1")).
		WillReturnRows(userRows().
			AddRow(2, "b@example.com", "b", "h", true, false, testCreatedAt).
			AddRow(3, "c@example.com", "c", "h", true, true, testCreatedAt))

	list, err := repo.ListUsers(context.Background(), models.Page{Skip: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, list.Count)
	require.Len(t, list.Data, 2)
	assert.Equal(t, int64(2), list.Data[0].UserID)
	assert.True(t, list.Data[1].IsSuperuser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_DefaultLimit(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("ORDER BY id LIMIT 100 OFFSET 0").WillReturnRows(userRows())

	list, err := repo.ListUsers(context.Background(), models.Page{})
	require.NoError(t, err)
	assert.Empty(t, list.Data)
	assert.NotNil(t, list.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM users ORDER BY").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1)) // wrong shape

	_, err := repo.ListUsers(context.Background(), models.Page{})
	assert.ErrorIs(t, err, ErrScanningRows)
}
