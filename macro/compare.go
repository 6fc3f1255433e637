package macro

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// numeric converts Go numeric values, including named numeric types and
// decimals, to a decimal. NaN and infinities are not representable and report
// false.
func numeric(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Decimal{}, false
		}

		return *v, true
	case *Decimal:
		if v == nil {
			return decimal.Decimal{}, false
		}

		return v.Decimal, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(rv.Uint()), 0), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, false
		}

		return decimal.NewFromFloat(f), true
	}

	return decimal.Decimal{}, false
}

// toFloat returns the float64 of a numeric value, keeping NaN and infinities.
func toFloat(value any) (float64, bool) {
	if d, ok := numeric(value); ok {
		return d.InexactFloat64(), true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64 {
		return rv.Float(), true
	}

	return 0, false
}

// toNumber coerces a value to a number the way arithmetic macros need it:
// nil is 0, booleans are 0 or 1, numeric strings are parsed and anything else
// is NaN.
func toNumber(value any) float64 {
	if value == nil {
		return 0
	}

	if f, ok := toFloat(value); ok {
		return f
	}

	switch v := value.(type) {
	case bool:
		if v {
			return 1
		}

		return 0
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}

		return f
	case fmt.Stringer:
		return toNumber(v.String())
	}

	return math.NaN()
}

// equalValues reports value equality: numbers compare by value across types,
// times by instant, comparable values with ==, and slices, maps and functions
// by identity. Non-nil slices without capacity are never identical.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if na, ok := numeric(a); ok {
		if nb, ok := numeric(b); ok {
			return na.Equal(nb)
		}
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Equal(tb)
		}
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}

	switch ra.Kind() {
	case reflect.Slice:
		if ra.IsNil() || rb.IsNil() {
			return ra.IsNil() && rb.IsNil()
		}

		// zero capacity slices may share one backing address
		if ra.Cap() == 0 || rb.Cap() == 0 {
			return false
		}

		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len() && ra.Cap() == rb.Cap()
	case reflect.Map, reflect.Func:
		return ra.Pointer() == rb.Pointer()
	}

	if !ra.Type().Comparable() {
		return false
	}

	defer func() {
		// interface fields of comparable structs may still hold uncomparable values
		_ = recover()
	}()

	return a == b
}

// compareValues orders two values. Numbers compare numerically, strings
// lexically and times chronologically; any other pair is unordered and
// reports false.
func compareValues(a, b any) (int, bool) {
	if na, ok := numeric(a); ok {
		if nb, ok := numeric(b); ok {
			return na.Cmp(nb), true
		}
	}

	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			if math.IsNaN(fa) || math.IsNaN(fb) {
				return 0, false
			}

			switch {
			case fa < fb:
				return -1, true
			case fa > fb:
				return 1, true
			}

			return 0, true
		}
	}

	sa, aok := stringOf(a)
	sb, bok := stringOf(b)

	if aok && bok {
		return strings.Compare(sa, sb), true
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb), true
		}
	}

	return 0, false
}

func stringOf(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}

	return "", false
}

func contains(list []any, value any) bool {
	for _, item := range list {
		if equalValues(item, value) {
			return true
		}
	}

	return false
}
