package store

// ErrorClassification is the result type returned by [ErrorClassificator.Classify].
// It tells the repository how a failed database operation should surface.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, syntax
	// errors and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again (e.g. after a transient connection loss or a deadlock rollback).
	// Repositories report it as [ErrStoreUnavailable].
	Retryable

	// UniqueViolation indicates a unique constraint rejected the row.
	UniqueViolation

	// ForeignKeyViolation indicates a referenced row does not exist.
	ForeignKeyViolation

	// InvalidValue indicates the database rejected a value the client
	// supplied: too long, out of range or not representable.
	InvalidValue
)

func (c ErrorClassification) String() string {
	switch c {
	case Retryable:
		return "retryable"
	case UniqueViolation:
		return "unique_violation"
	case ForeignKeyViolation:
		return "foreign_key_violation"
	case InvalidValue:
		return "invalid_value"
	default:
		return "non_retryable"
	}
}
