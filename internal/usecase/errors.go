package usecase

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrDoctorNotFound          = errors.New("doctor not found")
	ErrDoctorWriteFailed       = errors.New("failed to write doctor")
	ErrInvalidAvailabilityData = errors.New("doctor has invalid availability data")
	ErrValidation              = errors.New("validation failed")
)

// ValidationError describes rejected input. Fields maps a request field to
// a human readable message. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, msg := range e.Fields {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
