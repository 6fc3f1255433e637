package macro

import (
	"reflect"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestExpr(t *testing.T) {
	cls := NewClass("Person").
		Define("fullName", MustExpr(`first + " " + last`, map[string]string{
			"first": "name.first",
			"last":  "name.last",
		})).
		Define("adult", MustExpr(`age >= 18`, map[string]string{"age": "age"})).
		Define("tags", MustExpr(`[a, b]`, map[string]string{"a": "name.first", "b": "name.last"})).
		Define("price", MustExpr(`p`, map[string]string{"p": "price"})).
		Define("missing", MustExpr(`nothing + 1`, map[string]string{"nothing": "nothing"}))

	obj := cls.New(map[string]any{
		"name":  map[string]any{"first": "Ada", "last": "Lovelace"},
		"age":   36,
		"price": decimal.RequireFromString("1.25"),
	})

	assert.Equal(t, any("Ada Lovelace"), obj.Get("fullName"))
	assert.Equal(t, any(true), obj.Get("adult"))
	assert.Equal(t, []any{"Ada", "Lovelace"}, obj.Get("tags").([]any))
	assert.True(t, decimal.RequireFromString("1.25").Equal(obj.Get("price").(decimal.Decimal)))
	assert.Equal(t, nil, obj.Get("missing"))
}

func TestExprReadsComputedProperties(t *testing.T) {
	cls := NewClass("Cart").
		Define("count", Computed(func(obj *Object) any {
			return len(obj.Get("items").([]any))
		})).
		Define("large", MustExpr(`count > 2`, map[string]string{"count": "count"}))

	assert.Equal(t, any(true), cls.New(map[string]any{"items": []any{1, 2, 3}}).Get("large"))
	assert.Equal(t, any(false), cls.New(map[string]any{"items": []any{1}}).Get("large"))
}

func TestExprErrors(t *testing.T) {
	_, err := Expr(`first +`, map[string]string{"first": "first"})
	assert.IsError(t, err, ErrInvalidExpression)

	_, err = Expr(`undeclared`, nil)
	assert.IsError(t, err, ErrInvalidExpression)

	_, err = Expr(`x`, map[string]string{"x": "a..b"})
	assert.IsError(t, err, ErrInvalidExpression)

	assert.Panics(t, func() { MustExpr(`(`, nil) })
}

func TestDecimalValue(t *testing.T) {
	d := NewDecimal(decimal.RequireFromString("2.50"))

	assert.Equal(t, any(decimal.RequireFromString("2.50")), d.Value())

	native, err := d.ConvertToNative(floatType)
	assert.NoError(t, err)
	assert.Equal(t, any(2.5), native)

	assert.True(t, Truthy(d))
	assert.False(t, Truthy(NewDecimal(decimal.Zero)))
}

var floatType = reflect.TypeOf(0.0)
