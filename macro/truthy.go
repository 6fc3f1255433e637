package macro

import (
	"math"
	"reflect"

	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/shopspring/decimal"
)

// Truthy converts arbitrary values to the boolean semantics used by the
// logical macros. nil, false, zero numbers, NaN and empty strings are false.
// Non-nil slices, maps, structs and times are true even when empty or zero;
// pointers are judged by what they point to.
func Truthy(value any) bool {
	if value == nil {
		return false
	}

	switch v := value.(type) {
	case bool:
		return v
	case *bool:
		return v != nil && *v
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return floatTruthy(float64(v))
	case float64:
		return floatTruthy(v)
	case string:
		return v != ""
	case *string:
		return v != nil && *v != ""
	case decimal.Decimal:
		return !v.IsZero()
	case *decimal.Decimal:
		return v != nil && !v.IsZero()
	case *Decimal:
		return v != nil && !v.IsZero()
	case types.Bool:
		return bool(v)
	case types.Int:
		return v != 0
	case types.Uint:
		return v != 0
	case types.Double:
		return floatTruthy(float64(v))
	case types.String:
		return string(v) != ""
	case types.Null, *types.Unknown:
		return false
	case ref.Val:
		if types.IsUnknown(v) || v.Type() == types.NullType {
			return false
		}

		native, err := v.ConvertToNative(reflect.TypeOf((*any)(nil)).Elem())
		if err == nil {
			return Truthy(native)
		}
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}

		return Truthy(rv.Elem().Interface())
	case reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	case reflect.Array, reflect.Struct:
		return true
	case reflect.String:
		return rv.Len() > 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Float32, reflect.Float64:
		return floatTruthy(rv.Float())
	}

	return !rv.IsZero()
}

func floatTruthy(f float64) bool {
	return f != 0 && !math.IsNaN(f)
}
