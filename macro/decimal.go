package macro

import (
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/shopspring/decimal"
)

// Decimal is a wrapper around decimal.Decimal to implement CEL's ref.Val interface
type Decimal struct {
	decimal.Decimal
}

// NewDecimal wraps d.
func NewDecimal(d decimal.Decimal) *Decimal {
	return &Decimal{d}
}

// Ensure Decimal implements ref.Val
var _ ref.Val = (*Decimal)(nil)

// DecimalTypeName is the fully qualified CEL type name for Decimal
const DecimalTypeName = "propmacro.Decimal"

// DecimalType is the CEL type representation for Decimal
var DecimalType = types.NewObjectType(DecimalTypeName)

// Type returns the CEL type of the value.
func (d *Decimal) Type() ref.Type {
	return DecimalType
}

// Value returns the raw Go value.
func (d *Decimal) Value() any {
	return d.Decimal
}

// ConvertToNative converts the decimal to a Go native type.
func (d *Decimal) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc {
	case reflect.TypeOf(decimal.Decimal{}):
		return d.Decimal, nil
	case reflect.TypeOf(&decimal.Decimal{}):
		return &d.Decimal, nil
	case reflect.TypeOf(float64(0)):
		return d.InexactFloat64(), nil
	case reflect.TypeOf(""):
		return d.String(), nil
	}

	if typeDesc.Kind() == reflect.Interface {
		return d.Decimal, nil
	}

	return nil, fmt.Errorf("unsupported native conversion to %v for Decimal", typeDesc)
}

// ConvertToType converts the decimal to another CEL type.
func (d *Decimal) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case types.DoubleType:
		return types.Double(d.InexactFloat64())
	case types.StringType:
		return types.String(d.String())
	case types.TypeType:
		return DecimalType
	case DecimalType:
		return d
	}

	return types.NewErr("type conversion error from Decimal to %s", typeVal)
}

// Equal compares with decimals and CEL numbers by value.
func (d *Decimal) Equal(other ref.Val) ref.Val {
	switch o := other.(type) {
	case *Decimal:
		return types.Bool(d.Decimal.Equal(o.Decimal))
	case types.Int:
		return types.Bool(d.Decimal.Equal(decimal.NewFromInt(int64(o))))
	case types.Double:
		return types.Bool(d.Decimal.Equal(decimal.NewFromFloat(float64(o))))
	}

	return types.False
}

type decimalTypeAdapter struct{}

func (decimalTypeAdapter) NativeToValue(value any) ref.Val {
	switch v := value.(type) {
	case *Decimal:
		return v
	case decimal.Decimal:
		return &Decimal{v}
	case *decimal.Decimal:
		if v == nil {
			return types.NullValue
		}

		return &Decimal{*v}
	}

	return types.DefaultTypeAdapter.NativeToValue(value)
}

var _ types.Adapter = decimalTypeAdapter{}

type decimalLibrary struct{}

func (decimalLibrary) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		cel.CustomTypeAdapter(decimalTypeAdapter{}),
	}
}

func (decimalLibrary) ProgramOptions() []cel.ProgramOption {
	return nil
}

var _ cel.Library = decimalLibrary{}

// DecimalLibrary lets expression macros receive shopspring decimals.
var DecimalLibrary = cel.Lib(decimalLibrary{})
