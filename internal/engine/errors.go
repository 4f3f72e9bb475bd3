package engine

import "errors"

var (
	// ErrEmptySyncID is returned when Synchronize is called without a sync
	// identity to track progress under.
	ErrEmptySyncID = errors.New("sync id is required")
	// ErrNilPageSource is returned when Synchronize is called without a
	// source of updates.
	ErrNilPageSource = errors.New("page source is required")
	// ErrInvalidStatusUpdate wraps a validation failure for one update of a
	// page. The whole pass aborts before any side effect.
	ErrInvalidStatusUpdate = errors.New("invalid status update")
	// ErrAllocatorConflict is returned when an update names an index
	// allocator different from the one already recorded on the credential's
	// reference.
	ErrAllocatorConflict = errors.New("index allocator conflict")
)
