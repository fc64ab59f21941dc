package model

import (
	"encoding/json"
	"math"
)

// Value is an optional number. The zero Value is unavailable.
type Value struct {
	v  float64
	ok bool
}

// Some returns an available Value. NaN and infinities are treated as unavailable.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// None returns an unavailable Value.
func None() Value { return Value{} }

// Get returns the number and whether it is available.
func (x Value) Get() (float64, bool) { return x.v, x.ok }

// Valid reports whether the value is available.
func (x Value) Valid() bool { return x.ok }

// Float returns the number, or 0 when unavailable. Callers must check Valid first.
func (x Value) Float() float64 { return x.v }

func (x Value) MarshalJSON() ([]byte, error) {
	if !x.ok {
		return []byte("null"), nil
	}
	return json.Marshal(x.v)
}

func (x *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*x = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*x = Some(f)
	return nil
}
