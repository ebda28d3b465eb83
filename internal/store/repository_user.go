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

// userRepository is the SQL implementation of [UserRepository]. It works
// against the "users" table of either dialect.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts the account with its hash in a single statement and
// returns the stored row.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - transient failure → wraps [ErrStoreUnavailable].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		return models.User{}, err
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
		return models.User{}, r.db.wrapError(err, ErrEmailAlreadyExists)
	}

	return created, nil
}

// FindUserByID returns the account with the given id or [ErrNoUserWasFound].
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"id": id})
}

// FindUserByEmail returns the account with the given email or
// [ErrNoUserWasFound].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"email": email})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.db.builder, where)
	if err != nil {
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error finding user")
		return models.User{}, r.db.wrapError(err, nil)
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	log := logger.FromContext(ctx)

	if patch.PasswordHash == nil && patch.Email == nil && patch.Username == nil &&
		patch.IsActive == nil && patch.IsSuperuser == nil {
		return r.FindUserByID(ctx, id)
	}

	query, args, err := buildUpdateUserQuery(r.db.builder, id, patch)
	if err != nil {
		return models.User{}, err
	}

	updated, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", id).Msg("error updating user")
		return models.User{}, r.db.wrapError(err, ErrEmailAlreadyExists)
	}

	return updated, nil
}

// DeleteUser removes the account; its items go with it through the
// ON DELETE CASCADE foreign key.
func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, usersTable, id, ErrNoUserWasFound)
}

// ListUsers returns one page of accounts ordered by id plus the total count.
func (r *userRepository) ListUsers(ctx context.Context, page models.Page) (models.UserList, error) {
	log := logger.FromContext(ctx)

	count, err := countRows(ctx, r.db, usersTable, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error counting users")
		return models.UserList{}, err
	}

	query, args, err := buildListQuery(r.db.builder, usersTable, userColumns, nil, page)
	if err != nil {
		return models.UserList{}, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error listing users")
		return models.UserList{}, r.db.wrapError(err, nil)
	}
	defer rows.Close()

	users := make([]models.User, 0, page.Normalize().Limit)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.ListUsers").Msg("error scanning user row")
			return models.UserList{}, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return models.UserList{}, r.db.wrapError(err, nil)
	}

	return models.UserList{Data: users, Count: count}, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.Email, &u.Username, &u.PasswordHash, &u.IsActive, &u.IsSuperuser, &u.CreatedAt)
	return u, err
}

func deleteByID(ctx context.Context, db *DB, table string, id int64, notFound error) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(db.builder, table, id)
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "deleteByID").Str("table", table).Int64("id", id).Msg("error deleting row")
		return db.wrapError(err, nil)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return db.wrapError(err, nil)
	}
	if affected == 0 {
		return notFound
	}

	return nil
}

func countRows(ctx context.Context, db *DB, table string, where sq.Sqlizer) (int, error) {
	query, args, err := buildCountQuery(db.builder, table, where)
	if err != nil {
		return 0, err
	}

	var count int
	if err = db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, db.wrapError(err, nil)
	}
	return count, nil
}
