package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when creating or updating an account
	// would violate the unique email constraint.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a lookup by id or email matches no
	// account.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrItemNotFound is returned when a lookup, update or delete targets an
	// item id that does not exist.
	ErrItemNotFound = errors.New("item was not found")

	// ErrOwnerNotFound is returned when an item references an account that
	// does not exist.
	ErrOwnerNotFound = errors.New("item owner was not found")

	// ErrValueRejected is returned when the database refuses a column value,
	// for instance a string longer than the column allows.
	ErrValueRejected = errors.New("value rejected by the database")

	// ErrStoreUnavailable wraps transient failures: lost connections,
	// serialization failures, busy databases and expired request deadlines.
	// It is the only store error a caller may retry.
	ErrStoreUnavailable = errors.New("store is unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails for a non-transient reason.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnknownDriver is returned by [NewStorages] for an unsupported
	// storage driver.
	ErrUnknownDriver = errors.New("unknown storage driver")
)
