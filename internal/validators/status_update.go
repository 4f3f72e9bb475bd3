package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cred-keeper/internal/status"
	"github.com/MKhiriev/go-cred-keeper/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods
// to restrict validation to a subset of fields (field-level scoping).
const (
	// FieldTarget targets the credential addressing of a status update:
	// exactly one of credentialId or an embedded reference must be present.
	FieldTarget = "target"

	// FieldStatus targets the status descriptor: the credentialStatus
	// matcher object and the boolean value to set.
	FieldStatus = "status"

	// FieldExpand targets the optional expand directive of a status update.
	FieldExpand = "expand"

	// FieldCapabilities targets the pair of capabilities authorizing the
	// credential fetch and the remote status write.
	FieldCapabilities = "capabilities"

	// FieldCredentialID targets the identifier of a credential reference.
	FieldCredentialID = "credential_id"

	// FieldSequence targets the optimistic concurrency sequence of a
	// credential reference.
	FieldSequence = "sequence"

	// FieldSequenceForInsert enforces that the sequence must be zero for
	// newly inserted credential references (initial creation).
	FieldSequenceForInsert = "sequence for insert"

	// FieldSyncID targets the sync identity string of a synchronization run.
	FieldSyncID = "sync_id"
)

// Keys of the target credentialStatus object every status update must carry.
const (
	statusKeyType    = "type"
	statusKeyPurpose = "statusPurpose"
)

// StatusUpdateValidator implements the Validator interface for the domain
// models involved in a synchronization pass: StatusUpdate descriptors,
// CredentialReference records, and SyncRunRequest bodies.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type StatusUpdateValidator struct {
}

// NewStatusUpdateValidator constructs a new StatusUpdateValidator
// and returns it as the Validator interface.
func NewStatusUpdateValidator() Validator {
	return &StatusUpdateValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.StatusUpdate / *models.StatusUpdate
//   - models.CredentialReference / *models.CredentialReference
//   - models.SyncRunRequest / *models.SyncRunRequest
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// a sensible default set of fields is validated.
func (v *StatusUpdateValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.StatusUpdate:
		return v.validateStatusUpdate(ctx, value, fields...)
	case *models.StatusUpdate:
		return v.validateStatusUpdate(ctx, *value, fields...)

	case models.CredentialReference:
		return v.validateReference(ctx, value, fields...)
	case *models.CredentialReference:
		return v.validateReference(ctx, *value, fields...)

	case models.SyncRunRequest:
		return v.validateSyncRunRequest(ctx, value, fields...)
	case *models.SyncRunRequest:
		return v.validateSyncRunRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateStatusUpdate validates a single StatusUpdate descriptor.
//
// Default validated fields (when none specified):
// Target, Status, Expand, Capabilities.
//
// The check is structural only: it guarantees the descriptor is
// well-formed before the engine starts any side effect, it does not probe
// whether the named credential or reference actually exists.
//
// Returns the first encountered validation error or nil.
func (v *StatusUpdateValidator) validateStatusUpdate(ctx context.Context, update models.StatusUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTarget, FieldStatus, FieldExpand, FieldCapabilities}
	}

	for _, f := range fields {
		switch f {
		case FieldTarget:
			if err := v.validateTarget(update); err != nil {
				return err
			}
		case FieldStatus:
			if err := v.validateStatusTarget(update.Status); err != nil {
				return err
			}
		case FieldExpand:
			if err := v.validateExpand(update.Expand); err != nil {
				return err
			}
		case FieldCapabilities:
			if err := validateCapability(update.GetCredentialCapability); err != nil {
				return fmt.Errorf("getCredentialCapability: %w", err)
			}
			if err := validateCapability(update.UpdateStatusCapability); err != nil {
				return fmt.Errorf("updateStatusCapability: %w", err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateTarget enforces that exactly one of CredentialID and Reference is
// given and that an embedded reference names its credential.
func (v *StatusUpdateValidator) validateTarget(update models.StatusUpdate) error {
	hasID := update.CredentialID != ""
	hasReference := update.Reference != nil

	switch {
	case hasID && hasReference:
		return ErrAmbiguousTargetCredential
	case !hasID && !hasReference:
		return ErrNoTargetCredential
	case hasReference && update.Reference.CredentialID == "":
		return ErrReferenceWithoutID
	}

	return nil
}

// validateStatusTarget enforces the minimal credentialStatus shape (type and
// statusPurpose present as non-empty strings) and an explicit boolean value.
func (v *StatusUpdateValidator) validateStatusTarget(target models.StatusTarget) error {
	if len(target.CredentialStatus) == 0 {
		return ErrMissingCredentialStatus
	}

	if entryType, ok := target.CredentialStatus[statusKeyType].(string); !ok || entryType == "" {
		return ErrMissingStatusType
	}
	if purpose, ok := target.CredentialStatus[statusKeyPurpose].(string); !ok || purpose == "" {
		return ErrMissingStatusPurpose
	}

	if target.Value == nil {
		return ErrMissingStatusValue
	}

	return nil
}

// validateExpand enforces that a present expand directive names the one
// supported compact entry type and carries sane option overrides. A nil
// directive is valid (no expansion requested).
func (v *StatusUpdateValidator) validateExpand(expand *models.ExpandDirective) error {
	if expand == nil {
		return nil
	}

	if expand.Type != status.TerseStatusType {
		return fmt.Errorf("%w: %q", ErrUnsupportedExpandType, expand.Type)
	}

	if expand.Options != nil && expand.Options.ListLength < 0 {
		return ErrInvalidListLength
	}

	return nil
}

// validateCapability enforces that a capability is present and carries a
// usable authorization: either an opaque token string or a delegation
// object with an explicit invocationTarget.
func validateCapability(capability models.Capability) error {
	if capability.IsZero() {
		return ErrMissingCapability
	}

	if len(capability.Object) > 0 {
		if target, ok := capability.Object["invocationTarget"].(string); !ok || target == "" {
			return ErrInvalidCapability
		}
	}

	return nil
}

// validateReference validates a CredentialReference record.
//
// Default validated fields: CredentialID, Sequence.
//
// Special field FieldSequenceForInsert enforces Sequence == 0
// for newly created records.
func (v *StatusUpdateValidator) validateReference(ctx context.Context, ref models.CredentialReference, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCredentialID, FieldSequence}
	}

	for _, f := range fields {
		switch f {
		case FieldCredentialID:
			if ref.CredentialID == "" {
				return ErrInvalidCredentialID
			}
		case FieldSequence:
			if ref.Sequence < 0 {
				return ErrInvalidSequence
			}
		case FieldSequenceForInsert:
			if ref.Sequence != 0 {
				return ErrInvalidSequence
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSyncRunRequest validates a SyncRunRequest, which carries one page
// of status updates pushed over the HTTP API.
//
// Every update in the page is individually checked with the default
// StatusUpdate field set. An empty page is valid: it applies nothing and
// only moves the stored cursor forward.
//
// Returns a wrapped error indicating the index of the first invalid update.
func (v *StatusUpdateValidator) validateSyncRunRequest(ctx context.Context, request models.SyncRunRequest, fields ...string) error {
	if len(fields) != 0 {
		return ErrUnknownField
	}

	for i, update := range request.Updates {
		if err := v.validateStatusUpdate(ctx, update); err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}
	}

	return nil
}
