package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNoTargetCredential        = errors.New("no target credential: credentialId or reference is required")
	ErrAmbiguousTargetCredential = errors.New("ambiguous target credential: credentialId and reference are mutually exclusive")
	ErrReferenceWithoutID        = errors.New("embedded reference carries no credential id")
	ErrMissingCredentialStatus   = errors.New("credentialStatus is required")
	ErrMissingStatusType         = errors.New("credentialStatus type is required")
	ErrMissingStatusPurpose      = errors.New("credentialStatus statusPurpose is required")
	ErrMissingStatusValue        = errors.New("status value is required")
	ErrUnsupportedExpandType     = errors.New("unsupported expand type")
	ErrInvalidListLength         = errors.New("expand list length must be positive")
	ErrMissingCapability         = errors.New("capability is required")
	ErrInvalidCapability         = errors.New("capability must be a token string or carry an invocation target")
	ErrInvalidCredentialID       = errors.New("invalid credential id")
	ErrInvalidSequence           = errors.New("invalid sequence")
	ErrInvalidSyncID             = errors.New("invalid sync id")
)
