package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrReferenceNotFound is returned when a query or update targets a
	// credential reference that does not exist in the database.
	ErrReferenceNotFound = errors.New("credential reference was not found")

	// ErrReferenceAlreadyExists is returned when an insert collides with an
	// existing record for the same credential id.
	ErrReferenceAlreadyExists = errors.New("credential reference already exists")

	// ErrProgressNotFound is returned when a sync progress record is requested
	// without createIfMissing and no record exists for the id.
	ErrProgressNotFound = errors.New("sync progress record was not found")

	// ErrSequenceConflict is returned when an optimistic-locking check fails:
	// the stored sequence does not equal the submitted sequence minus one,
	// meaning another writer has modified the record since it was read.
	ErrSequenceConflict = errors.New("sequence conflict occurred")

	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrUnknownDriver is returned by [NewConnect] for a driver name the store
	// cannot open.
	ErrUnknownDriver = errors.New("unknown database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
