package status

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Status entry types understood by the expansion step.
const (
	// TerseStatusType is the compact entry form: a base URL plus a single
	// packed integer index.
	TerseStatusType = "TerseBitstringStatusListEntry"

	// FullStatusType is the expanded entry form consumed by matching.
	FullStatusType = "BitstringStatusListEntry"
)

// Expansion defaults, applied when the caller passes zero values.
const (
	DefaultStatusPurpose = "revocation"
	DefaultListLength    = int64(67108864)
)

// ExpandCredentialStatus converts a compact status entry into its full form.
//
// The compact form packs the status list number and the position within the
// list into one integer index. Expansion splits the index against the list
// length: the list number is index/listLength, the position within the list
// is index%listLength, and the list credential URL is rebuilt as
// "<baseUrl>/<purpose>/<list number>". An empty statusPurpose selects
// "revocation", a non-positive listLength selects 67108864.
//
// An entry already in full form is returned unchanged. Any other entry type
// yields ErrUnsupportedStatusType.
func ExpandCredentialStatus(entry map[string]any, statusPurpose string, listLength int64) (map[string]any, error) {
	entryType, _ := entry["type"].(string)

	switch entryType {
	case FullStatusType:
		return entry, nil
	case TerseStatusType:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStatusType, entryType)
	}

	if statusPurpose == "" {
		statusPurpose = DefaultStatusPurpose
	}
	if listLength <= 0 {
		listLength = DefaultListLength
	}

	baseURL, ok := entry["terseStatusListBaseUrl"].(string)
	if !ok || baseURL == "" {
		return nil, fmt.Errorf("%w: terseStatusListBaseUrl is required", ErrMalformedStatusEntry)
	}

	index, ok := packedIndex(entry["terseStatusListIndex"])
	if !ok || index < 0 {
		return nil, fmt.Errorf("%w: terseStatusListIndex must be a non-negative integer", ErrMalformedStatusEntry)
	}

	listNumber := index / listLength

	return map[string]any{
		"type":                 FullStatusType,
		"statusPurpose":        statusPurpose,
		"statusListCredential": fmt.Sprintf("%s/%s/%d", baseURL, statusPurpose, listNumber),
		"statusListIndex":      strconv.FormatInt(index%listLength, 10),
	}, nil
}

// packedIndex coerces the packed list index to int64. Decoded JSON carries
// numbers as float64; hand-built entries may use Go integer types.
func packedIndex(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
