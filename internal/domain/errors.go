package domain

import (
	"errors"
	"fmt"
)

// Decode failure taxonomy. Every parse, classify and extract function returns
// an error that matches exactly one of these via errors.Is.
var (
	// ErrOutOfBounds means the requested field or day slot lies past the end
	// of the record, or the day index is outside 0..30.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrMalformedNumber means a numeric field is not a base-10 integer of the
	// expected width.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrUnknownCode means a classifier received a code outside its known
	// domain, including legal codes this decoder does not implement.
	ErrUnknownCode = errors.New("unknown code")
)

// noDay marks a FieldError raised by a header field.
const noDay = -1

// FieldError records which field (and day slot, for per-day fields) failed to
// decode, together with the raw bytes that were rejected.
type FieldError struct {
	Field Field
	Day   int
	Raw   string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Day == noDay {
		return fmt.Sprintf("decode %s %q: %v", e.Field, e.Raw, e.Err)
	}
	return fmt.Sprintf("decode %s day %d %q: %v", e.Field, e.Day, e.Raw, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ErrorKind maps a decode error to a short label suitable for metrics.
// Errors outside the taxonomy report "other".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrMalformedNumber):
		return "malformed_number"
	case errors.Is(err, ErrUnknownCode):
		return "unknown_code"
	default:
		return "other"
	}
}
