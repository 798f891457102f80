package domain

import "errors"

// Validation errors. Every one of these aborts the command before any write
// and maps to exit code 2.
var (
	ErrInvalidFormat         = errors.New("invalid version format")
	ErrVersionMismatch       = errors.New("recorded versions do not match")
	ErrTagMismatch           = errors.New("recorded version does not reconcile with the latest tag")
	ErrUnknownBumpKind       = errors.New("unknown bump kind")
	ErrDowngradeRejected     = errors.New("new version is less than current version")
	ErrOverwriteRejected     = errors.New("current version already has prerelease or metadata")
	ErrPrereleaseTagRejected = errors.New("cannot tag a prerelease or metadata version")
)

var validationErrors = []error{
	ErrInvalidFormat,
	ErrVersionMismatch,
	ErrTagMismatch,
	ErrUnknownBumpKind,
	ErrDowngradeRejected,
	ErrOverwriteRejected,
	ErrPrereleaseTagRejected,
}

// IsValidationError reports whether err wraps one of the validation sentinels.
func IsValidationError(err error) bool {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
