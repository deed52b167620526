package xgelf

import (
	"errors"
)

var (
	// ErrUnsupportedField matches every UnsupportedFieldError via errors.Is.
	ErrUnsupportedField = errors.New("xgelf: unsupported field")
	// ErrNoFields is returned by Builder.Build when no field was configured.
	ErrNoFields = errors.New("xgelf: no fields configured")
)

// UnsupportedFieldError reports a field the event adapter cannot resolve.
// It signals a mismatch between configured fields and adapter capability.
type UnsupportedFieldError struct {
	Field Field
}

func (e *UnsupportedFieldError) Error() string {
	return "xgelf: cannot provide value for " + e.Field.String()
}

func (e *UnsupportedFieldError) Is(target error) bool {
	return target == ErrUnsupportedField
}
