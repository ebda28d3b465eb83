package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/migrations"
)

// DB is a connection pool bound to one SQL dialect.
//
// builder renders queries with the dialect's placeholder format, so the
// same query builders serve PostgreSQL ($1) and SQLite (?).
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect string, placeholder sq.PlaceholderFormat, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Migrate applies the embedded migrations for the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

// classify returns the classification of err, treating expired contexts and
// dead connections as retryable regardless of driver.
func (db *DB) classify(err error) ErrorClassification {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return Retryable
	}
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}

// wrapError attaches the store sentinel matching err's classification.
// conflict is returned for unique violations.
func (db *DB) wrapError(err, conflict error) error {
	switch db.classify(err) {
	case Retryable:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	case UniqueViolation:
		if conflict != nil {
			return conflict
		}
	case ForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrOwnerNotFound, err)
	case InvalidValue:
		return fmt.Errorf("%w: %w", ErrValueRejected, err)
	}
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}
