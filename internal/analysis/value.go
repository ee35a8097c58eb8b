package analysis

import (
	"encoding/json"
	"math"
)

// Value is a statistic that is absent when its input had no data. The zero
// Value is "no data"; it is never the same thing as a computed 0.
type Value struct {
	v  float64
	ok bool
}

// Some wraps a computed statistic.
func Some(v float64) Value { return Value{v: v, ok: true} }

// Get returns the statistic and whether it exists.
func (x Value) Get() (float64, bool) { return x.v, x.ok }

// OK reports whether the statistic exists.
func (x Value) OK() bool { return x.ok }

// Or returns the statistic, or def when there is none.
func (x Value) Or(def float64) float64 {
	if !x.ok {
		return def
	}
	return x.v
}

// Float returns the statistic, or NaN when there is none.
func (x Value) Float() float64 { return x.Or(math.NaN()) }

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

// MarshalYAML emits null for a missing statistic.
func (x Value) MarshalYAML() (interface{}, error) {
	if !x.ok {
		return nil, nil
	}
	return x.v, nil
}
