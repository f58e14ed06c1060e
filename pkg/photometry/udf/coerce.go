package udf

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ToFloat64 coerces a SQL value to DOUBLE. nil and values that do not read
// as a number report false; the caller treats both as NULL.
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case decimal.Decimal:
		f, _ := n.Float64()
		return f, true
	case decimal.NullDecimal:
		if !n.Valid {
			return 0, false
		}
		f, _ := n.Decimal.Float64()
		return f, true
	case string:
		return parseFloat(n)
	case []byte:
		return parseFloat(string(n))
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		// ParseFloat returns +/-Inf with ErrRange on overflow; keep that
		// so the validity check maps it to NULL.
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange && math.IsInf(f, 0) {
			return f, true
		}
		return 0, false
	}
	return f, true
}
