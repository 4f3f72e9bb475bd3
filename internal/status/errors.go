package status

import "errors"

var (
	ErrNoMatchingStatus      = errors.New("no matching status entry found")
	ErrAmbiguousStatus       = errors.New("multiple status entries match")
	ErrUnsupportedStatusType = errors.New("unsupported status entry type")
	ErrMalformedStatusEntry  = errors.New("malformed status entry")
)
