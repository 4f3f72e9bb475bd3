package status

import (
	"fmt"
	"reflect"

	"github.com/MKhiriev/go-cred-keeper/models"
)

// Match locates the single status entry of credential that carries every key
// of target with an equal value.
//
// When a non-nil expand directive is given, candidates whose type equals the
// directive's type are expanded before comparison; candidates of a different
// type are skipped unless the directive marks expansion optional, in which
// case they are compared raw. The returned entry is always the raw entry as
// it appears on the credential, never the expanded form.
//
// Zero matching entries yield ErrNoMatchingStatus, more than one yield
// ErrAmbiguousStatus.
func Match(credential map[string]any, target map[string]any, expand *models.ExpandDirective) (map[string]any, error) {
	var matched []map[string]any

	for _, entry := range candidateEntries(credential) {
		candidate := entry

		if expand != nil {
			entryType, _ := entry["type"].(string)
			if entryType != expand.Type {
				if expand.IsRequired() {
					continue
				}
			} else {
				purpose, listLength := expandOverrides(expand)

				expanded, err := ExpandCredentialStatus(entry, purpose, listLength)
				if err != nil {
					return nil, err
				}
				candidate = expanded
			}
		}

		if containsAll(candidate, target) {
			matched = append(matched, entry)
		}
	}

	switch len(matched) {
	case 0:
		return nil, ErrNoMatchingStatus
	case 1:
		return matched[0], nil
	default:
		return nil, fmt.Errorf("%w: %d candidates", ErrAmbiguousStatus, len(matched))
	}
}

// candidateEntries normalizes the credentialStatus value, which may be a
// single entry or a list of entries.
func candidateEntries(credential map[string]any) []map[string]any {
	switch v := credential["credentialStatus"].(type) {
	case map[string]any:
		return []map[string]any{v}
	case []map[string]any:
		return v
	case []any:
		entries := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if entry, ok := item.(map[string]any); ok {
				entries = append(entries, entry)
			}
		}
		return entries
	default:
		return nil
	}
}

// containsAll reports whether every key of target is present on candidate
// with a deeply equal value.
func containsAll(candidate, target map[string]any) bool {
	for key, want := range target {
		got, ok := candidate[key]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}

	return true
}

func expandOverrides(d *models.ExpandDirective) (string, int64) {
	if d.Options == nil {
		return "", 0
	}

	return d.Options.StatusPurpose, d.Options.ListLength
}
