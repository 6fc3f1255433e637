package propmacro

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/shibukawa/propmacro/macro"
)

type argKind int

const (
	argNone argKind = iota
	argPath
	argPaths
	argPathKey
	argPattern
	argExpression
)

type factory struct {
	args  argKind
	build func(PropertySpec) (macro.Definition, error)
}

func single(fn func(path string) macro.Definition) factory {
	return factory{args: argPath, build: func(p PropertySpec) (macro.Definition, error) {
		return fn(p.Path), nil
	}}
}

func multi(fn func(paths ...string) macro.Definition) factory {
	return factory{args: argPaths, build: func(p PropertySpec) (macro.Definition, error) {
		return fn(p.Paths...), nil
	}}
}

func operand(fn func(path string, value any) macro.Definition) factory {
	return factory{args: argPath, build: func(p PropertySpec) (macro.Definition, error) {
		return fn(p.Path, p.Value), nil
	}}
}

func keyed(fn func(path, key string) macro.Definition) factory {
	return factory{args: argPathKey, build: func(p PropertySpec) (macro.Definition, error) {
		return fn(p.Path, p.Key), nil
	}}
}

// factories maps schema macro names to their constructors.
var factories = map[string]factory{
	"alias": single(macro.Alias),
	"deprecatingAlias": {args: argPath, build: func(p PropertySpec) (macro.Definition, error) {
		var opts []macro.DeprecationOption
		if p.ID != "" {
			opts = append(opts, macro.WithID(p.ID))
		}

		if p.Until != "" {
			opts = append(opts, macro.WithUntil(p.Until))
		}

		return macro.DeprecatingAlias(p.Path, p.Message, opts...), nil
	}},
	"reads": {args: argPath, build: func(p PropertySpec) (macro.Definition, error) {
		return macro.Reads(p.Path, freshDefault(p.Default)), nil
	}},
	"overridableReads": single(macro.OverridableReads),
	"and":              multi(macro.And),
	"or":               multi(macro.Or),
	"bool":             single(macro.Bool),
	"not":              single(macro.Not),
	"empty":            single(macro.Empty),
	"notEmpty":         single(macro.NotEmpty),
	"nullish":          single(macro.Nullish),
	"equal":            operand(macro.Equal),
	"gt":               operand(macro.GT),
	"gte":              operand(macro.GTE),
	"lt":               operand(macro.LT),
	"lte":              operand(macro.LTE),
	"match": {args: argPattern, build: func(p PropertySpec) (macro.Definition, error) {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return macro.Definition{}, err
		}

		return macro.Match(p.Path, re), nil
	}},
	"collect":   multi(macro.Collect),
	"diff":      multi(macro.Diff),
	"intersect": multi(macro.Intersect),
	"union":     multi(macro.Union),
	"unique":    single(macro.Unique),
	"uniqueBy":  keyed(macro.UniqueBy),
	"filterBy": {args: argPathKey, build: func(p PropertySpec) (macro.Definition, error) {
		if p.Value == nil {
			return macro.FilterBy(p.Path, p.Key), nil
		}

		return macro.FilterBy(p.Path, p.Key, p.Value), nil
	}},
	"mapBy": keyed(macro.MapBy),
	"max":   single(macro.Max),
	"min":   single(macro.Min),
	"sortBy": {args: argPathKey, build: func(p PropertySpec) (macro.Definition, error) {
		if p.Descending {
			return macro.SortByDescending(p.Path, p.Key), nil
		}

		return macro.SortBy(p.Path, p.Key), nil
	}},
	"sum": single(macro.Sum),
	"expr": {args: argExpression, build: func(p PropertySpec) (macro.Definition, error) {
		return macro.Expr(p.Expression, p.Vars)
	}},
}

// MacroNames returns the macro names usable in a schema, sorted.
func MacroNames() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// freshDefault turns list and map defaults into functions returning a copy,
// so objects never share a mutable default.
func freshDefault(def any) any {
	switch def.(type) {
	case []any, map[string]any:
		return func() any { return deepCopy(def) }
	}

	return def
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = deepCopy(item)
		}

		return result
	case map[string]any:
		result := make(map[string]any, len(v))
		for k, item := range v {
			result[k] = deepCopy(item)
		}

		return result
	}

	return value
}

// Registry holds the classes built from a schema
type Registry struct {
	classes map[string]*macro.Class
	order   []string
}

// Build creates a class for every class declaration. Options are applied to
// every class.
func (s *Schema) Build(opts ...macro.ClassOption) (*Registry, error) {
	if err := validateSchema(s); err != nil {
		return nil, err
	}

	r := &Registry{classes: make(map[string]*macro.Class, len(s.Classes))}

	for _, spec := range s.Classes {
		class := macro.NewClass(spec.Name, opts...)

		for _, prop := range spec.Properties {
			f, ok := factories[prop.Macro]
			if !ok {
				return nil, fmt.Errorf("class '%s': property '%s': %w '%s'", spec.Name, prop.Name, ErrUnknownMacro, prop.Macro)
			}

			def, err := f.build(prop)
			if err != nil {
				return nil, fmt.Errorf("class '%s': property '%s': %w", spec.Name, prop.Name, err)
			}

			class.Define(prop.Name, def)
		}

		r.classes[spec.Name] = class
		r.order = append(r.order, spec.Name)
	}

	return r, nil
}

// Class returns the class registered under name
func (r *Registry) Class(name string) (*macro.Class, error) {
	class, ok := r.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}

	return class, nil
}

// Names returns the class names in schema order
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}
