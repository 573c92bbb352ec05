package core

import (
	"math"
	"strconv"
)

// Float is a float64 that survives JSON encoding: NaN and ±Inf become null.
type Float float64

// NaN returns an undefined Float
func NaN() Float {
	return Float(math.NaN())
}

// Valid reports whether the value is a finite number
func (f Float) Valid() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Float64 returns the underlying value
func (f Float) Float64() float64 {
	return float64(f)
}

// String formats the value with the shortest round-trip representation, "NaN" when undefined
func (f Float) String() string {
	if math.IsNaN(float64(f)) {
		return "NaN"
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// Format renders the value with a fixed number of decimals, empty when undefined
func (f Float) Format(decimals int) string {
	if !f.Valid() {
		return ""
	}
	return strconv.FormatFloat(float64(f), 'f', decimals, 64)
}

// MarshalJSON implements json.Marshaler
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(f), 'g', -1, 64)), nil
}

// UnmarshalJSON implements json.Unmarshaler; null decodes to NaN
func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = NaN()
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}
