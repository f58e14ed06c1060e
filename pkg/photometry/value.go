package photometry

import (
	"math"
	"strconv"
)

// Value is the result of a photometry conversion: either a finite float64
// or Undefined. The zero Value is Undefined.
type Value struct {
	v       float64
	defined bool
}

// Undefined is the "no value" result. SQL hosts render it as NULL.
var Undefined = Value{}

// Defined wraps f. Non-finite f collapses to Undefined so a Value never
// carries NaN or an infinity.
func Defined(f float64) Value {
	if !isFinite(f) {
		return Undefined
	}
	return Value{v: f, defined: true}
}

func (val Value) Float64() (float64, bool) {
	return val.v, val.defined
}

func (val Value) IsUndefined() bool {
	return !val.defined
}

// Interface returns the float64, or nil when undefined.
func (val Value) Interface() any {
	if !val.defined {
		return nil
	}
	return val.v
}

func (val Value) String() string {
	if !val.defined {
		return "NULL"
	}
	return strconv.FormatFloat(val.v, 'g', -1, 64)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
