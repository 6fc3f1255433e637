package macro

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/shibukawa/propmacro/propath"
)

// Expr builds a read-only property computed by a CEL expression. Every entry
// of vars declares a variable bound to the value of a path on each read.
// Evaluation errors read as nil.
func Expr(expression string, vars map[string]string) (Definition, error) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}

	slices.Sort(names)

	opts := []cel.EnvOption{DecimalLibrary}
	paths := make([]propath.Path, len(names))

	for i, name := range names {
		p, err := propath.Parse(vars[name])
		if err != nil {
			return Definition{}, fmt.Errorf("%w: variable %s: %w", ErrInvalidExpression, name, err)
		}

		paths[i] = p
		opts = append(opts, cel.Variable(name, cel.DynType))
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return Definition{}, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return Definition{}, fmt.Errorf("%w: %q: %w", ErrInvalidExpression, expression, issues.Err())
	}

	program, err := env.Program(ast)
	if err != nil {
		return Definition{}, fmt.Errorf("%w: %q: %w", ErrInvalidExpression, expression, err)
	}

	return Computed(func(obj *Object) any {
		activation := make(map[string]any, len(names))
		for i, name := range names {
			activation[name] = paths[i].Get(obj)
		}

		out, _, err := program.Eval(activation)
		if err != nil {
			return nil
		}

		return nativeValue(out)
	}), nil
}

// MustExpr is like Expr but panics on error.
func MustExpr(expression string, vars map[string]string) Definition {
	def, err := Expr(expression, vars)
	if err != nil {
		panic(err)
	}

	return def
}

var (
	sliceType = reflect.TypeOf([]any{})
	mapType   = reflect.TypeOf(map[string]any{})
)

func nativeValue(v ref.Val) any {
	switch v.Type() {
	case types.NullType:
		return nil
	case types.ListType:
		if native, err := v.ConvertToNative(sliceType); err == nil {
			return native
		}
	case types.MapType:
		if native, err := v.ConvertToNative(mapType); err == nil {
			return native
		}
	}

	return v.Value()
}
