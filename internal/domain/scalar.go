package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Scalar keeps a JSON value that upstream tables emit either as a number or
// as a string ("129.90", 129.9). Objects, arrays and null are treated as unset.
type Scalar struct {
	raw string
	set bool
}

// NewScalar builds a set Scalar from its textual form.
func NewScalar(raw string) Scalar {
	return Scalar{raw: raw, set: true}
}

// ScalarFloat builds a set Scalar from a number.
func ScalarFloat(v float64) Scalar {
	return NewScalar(strconv.FormatFloat(v, 'f', -1, 64))
}

// IsSet reports whether a value was present.
func (s Scalar) IsSet() bool {
	return s.set
}

// String returns the raw text, or "" when unset.
func (s Scalar) String() string {
	return s.raw
}

// Float parses the value; ok is false when unset, unparsable or not finite.
func (s Scalar) Float() (float64, bool) {
	if !s.set {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s.raw), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// UnmarshalJSON accepts strings, numbers and booleans.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = Scalar{}
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case 'n', '{', '[':
		return nil
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = NewScalar(str)
	default:
		*s = NewScalar(string(data))
	}
	return nil
}

// MarshalJSON writes numbers as numbers and everything else as strings.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.set {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(s.raw, 64); err == nil {
		return []byte(s.raw), nil
	}
	return json.Marshal(s.raw)
}
