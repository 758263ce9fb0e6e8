package pricing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Raw is a type-loose form value. It keeps whatever the caller typed
// ("12", "0,15", "1.30") and is only interpreted when a quote is computed.
// The empty Raw means the value was never set.
type Raw string

// Float returns a Raw holding v in its shortest exact decimal form.
func Float(v float64) Raw {
	return Raw(strconv.FormatFloat(v, 'g', -1, 64))
}

// Int returns a Raw holding v.
func Int(v int) Raw {
	return Raw(strconv.Itoa(v))
}

// Number coerces r with CoerceNumber.
func (r Raw) Number(fallback float64) float64 {
	return CoerceNumber(string(r), fallback)
}

// Hours interprets r as a duration with ParseHours.
func (r Raw) Hours(fallback float64) float64 {
	return ParseHours(string(r), fallback)
}

// UnmarshalJSON accepts numbers, strings, booleans and null. Anything else
// leaves the value unset instead of failing the whole document.
func (r *Raw) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*r = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Raw(s)
	case bytes.Equal(data, []byte("true")):
		*r = "1"
	case bytes.Equal(data, []byte("false")):
		*r = "0"
	case data[0] == '{' || data[0] == '[':
		*r = ""
	default:
		*r = Raw(data)
	}
	return nil
}

// MarshalJSON writes the value as a string so that it survives a round trip
// byte for byte. Unset values are written as null.
func (r Raw) MarshalJSON() ([]byte, error) {
	if r == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

// CoerceNumber converts a loosely formatted number into a float64.
//
// All whitespace is dropped and the first comma is read as the decimal
// separator. Unset, unparsable and non-finite input yields fallback.
func CoerceNumber(value string, fallback float64) float64 {
	s := strings.Join(strings.Fields(value), "")
	if s == "" {
		return fallback
	}
	s = strings.Replace(s, ",", ".", 1)

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return n
}
