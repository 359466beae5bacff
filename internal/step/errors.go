package step

import (
	"errors"
	"fmt"
)

// ErrMalformedDescriptor is the sentinel matched by every
// MalformedDescriptorError.
var ErrMalformedDescriptor = errors.New("malformed step descriptor")

// MalformedDescriptorError reports a descriptor field that cannot be
// normalized.
type MalformedDescriptorError struct {
	Step   string // descriptor name, if known
	Field  string
	Label  string
	Reason string
}

func (e *MalformedDescriptorError) Error() string {
	msg := ErrMalformedDescriptor.Error()
	if e.Step != "" {
		msg += fmt.Sprintf(" %q", e.Step)
	}
	msg += fmt.Sprintf(": field %q", e.Field)
	if e.Label != "" {
		msg += fmt.Sprintf(", label %q", e.Label)
	}
	return msg + ": " + e.Reason
}

func (e *MalformedDescriptorError) Unwrap() error { return ErrMalformedDescriptor }
