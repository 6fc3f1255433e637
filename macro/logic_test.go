package macro

import (
	"regexp"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func evaluate(def Definition, target map[string]any) any {
	return NewClass("Test").Define("value", def).New(target).Get("value")
}

func TestAndOr(t *testing.T) {
	target := map[string]any{"yes": true, "one": 1, "no": false, "zero": 0, "text": "x", "arr": []any{}}

	tests := []struct {
		name string
		def  Definition
		want any
	}{
		{"and empty", And(), true},
		{"and all truthy returns last", And("yes", "one", "text"), "x"},
		{"and stops at falsy", And("yes", "zero", "text"), 0},
		{"and missing", And("yes", "missing"), nil},
		{"and empty array is truthy", And("arr", "text"), "x"},
		{"or empty", Or(), false},
		{"or first truthy", Or("no", "one", "text"), 1},
		{"or all falsy returns last", Or("no", "zero"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluate(tt.def, target))
		})
	}
}

func TestUnaryPredicates(t *testing.T) {
	target := map[string]any{
		"empty":   []int{},
		"items":   []int{1},
		"arr":     []any{},
		"obj":     map[string]any{},
		"record":  struct{}{},
		"blank":   "",
		"text":    "a",
		"nothing": nil,
		"zero":    0,
	}

	tests := []struct {
		name string
		def  Definition
		want bool
	}{
		{"bool text", Bool("text"), true},
		{"bool blank", Bool("blank"), false},
		{"not zero", Not("zero"), true},
		{"not text", Not("text"), false},
		{"empty slice", Empty("empty"), true},
		{"empty missing", Empty("missing"), true},
		{"empty items", Empty("items"), false},
		{"not empty items", NotEmpty("items"), true},
		{"not empty slice", NotEmpty("empty"), false},
		{"bool empty array", Bool("arr"), true},
		{"not empty array", Not("arr"), false},
		{"bool empty object", Bool("obj"), true},
		{"empty array", Empty("arr"), true},
		{"empty object", Empty("obj"), false},
		{"empty struct", Empty("record"), false},
		{"not empty object", NotEmpty("obj"), true},
		{"empty blank", Empty("blank"), true},
		{"nullish nil", Nullish("nothing"), true},
		{"nullish missing", Nullish("missing.deeper"), true},
		{"nullish zero", Nullish("zero"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, any(tt.want), evaluate(tt.def, target))
		})
	}
}

func TestRelational(t *testing.T) {
	now := time.Now()
	target := map[string]any{
		"age":    int32(20),
		"score":  9.5,
		"price":  decimal.RequireFromString("10.50"),
		"name":   "bob",
		"at":     now,
		"nested": map[string]any{"n": uint8(3)},
	}

	tests := []struct {
		name string
		def  Definition
		want bool
	}{
		{"equal across int kinds", Equal("age", 20), true},
		{"equal int and float", Equal("age", 20.0), true},
		{"equal decimal and float", Equal("price", 10.5), true},
		{"equal string", Equal("name", "bob"), true},
		{"not equal string", Equal("name", "alice"), false},
		{"equal missing nil", Equal("missing", nil), true},
		{"gt", GT("age", 18), true},
		{"gt equal", GT("age", 20), false},
		{"gte equal", GTE("age", 20), true},
		{"lt float", LT("score", 10), true},
		{"lte decimal", LTE("price", decimal.NewFromFloat(10.5)), true},
		{"lt nested", LT("nested.n", 4), true},
		{"string order", GT("name", "alice"), true},
		{"time order", LT("at", now.Add(time.Second)), true},
		{"incomparable", GT("name", 1), false},
		{"missing is unordered", LT("missing", 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, any(tt.want), evaluate(tt.def, target))
		})
	}
}

type label string

func (l label) String() string { return string(l) }

type code struct{ value string }

func (c code) String() string { return c.value }

func TestMatch(t *testing.T) {
	re := regexp.MustCompile(`^[a-z]+@example\.com$`)
	target := map[string]any{
		"email":  "kei@example.com",
		"other":  "kei@example.org",
		"named":  label("ken@example.com"),
		"code":   code{"ryo@example.com"},
		"number": 1,
	}

	assert.Equal(t, any(true), evaluate(Match("email", re), target))
	assert.Equal(t, any(false), evaluate(Match("other", re), target))
	assert.Equal(t, any(true), evaluate(Match("named", re), target))
	assert.Equal(t, any(true), evaluate(Match("code", re), target))
	assert.Equal(t, any(false), evaluate(Match("number", re), target))
	assert.Equal(t, any(false), evaluate(Match("missing", re), target))
}

func TestLogicalMacrosAreReadOnly(t *testing.T) {
	cls := NewClass("Test").Define("flag", Bool("x"))
	assert.IsError(t, cls.New(nil).Set("flag", true), ErrNoSetter)
}
