package forms

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

// FixValidationMessage is the warning shown when a submission is blocked
// by field errors.
const FixValidationMessage = "Please fix the validation errors"

// FieldErrors maps a field name to its message. A nil or empty value
// means the draft is valid.
type FieldErrors map[string]string

func (f *FieldErrors) add(field, msg string) {
	if *f == nil {
		*f = FieldErrors{}
	}
	if _, ok := (*f)[field]; !ok {
		(*f)[field] = msg
	}
}

// Fields returns the failing field names, sorted.
func (f FieldErrors) Fields() []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for _, k := range f.Fields() {
		parts = append(parts, k+": "+f[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (f FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// Err returns f as an error, or nil when there are no field errors.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return f
}
