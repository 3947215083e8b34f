package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MissingValue is the sentinel GHCN-Daily uses for "no measurement".
const MissingValue = -9999

// Value is one day's measurement. The zero Value is absent.
type Value struct {
	Amount  int
	Present bool
}

// PresentValue returns a present Value holding n.
func PresentValue(n int) Value { return Value{Amount: n, Present: true} }

// MarshalJSON encodes an absent value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Present {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(v.Amount), 10), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedNumber, data)
	}
	*v = PresentValue(n)
	return nil
}

// ParseYear parses a 4-byte year field. Only digits are accepted: a padded or
// signed year is malformed.
func ParseYear(raw string) (int, error) {
	return parseStrict(raw, FieldYear.Width())
}

// ParseMonth parses a 2-byte month field of digits and requires it to be
// 1..12.
func ParseMonth(raw string) (int, error) {
	m, err := parseStrict(raw, FieldMonth.Width())
	if err != nil {
		return 0, err
	}
	if m < 1 || m > 12 {
		return 0, fmt.Errorf("%w: month %d not in 1..12", ErrMalformedNumber, m)
	}
	return m, nil
}

// ParseValue parses a right-justified 5-byte value field. Surrounding
// whitespace is trimmed; -9999 yields an absent Value.
func ParseValue(raw string) (Value, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrMalformedNumber, raw)
	}
	if n == MissingValue {
		return Value{}, nil
	}
	return PresentValue(n), nil
}

func parseStrict(raw string, width int) (int, error) {
	if len(raw) != width {
		return 0, fmt.Errorf("%w: %q is not %d bytes", ErrMalformedNumber, raw, width)
	}
	for i := range len(raw) {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, fmt.Errorf("%w: %q is not all digits", ErrMalformedNumber, raw)
		}
	}
	return strconv.Atoi(raw)
}
