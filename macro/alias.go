package macro

import (
	"reflect"

	"github.com/shibukawa/propmacro/propath"
)

// Alias binds a property to path in both directions.
func Alias(path string) Definition {
	p := propath.MustParse(path)

	return Definition{
		Get: func(obj *Object, _ string) any {
			return p.Get(obj)
		},
		Set: func(obj *Object, _ string, value any) error {
			return p.Set(obj, value)
		},
	}
}

// DeprecationOption adds metadata to deprecation warnings.
type DeprecationOption func(*DeprecationEntry)

// WithID tags the warning with a deprecation identifier.
func WithID(id string) DeprecationOption {
	return func(e *DeprecationEntry) {
		e.ID = id
	}
}

// WithUntil records the version in which the alias goes away.
func WithUntil(until string) DeprecationOption {
	return func(e *DeprecationEntry) {
		e.Until = until
	}
}

// DeprecatingAlias behaves like Alias and reports every read and write to the
// class logger.
func DeprecatingAlias(path, message string, opts ...DeprecationOption) Definition {
	alias := Alias(path)

	template := DeprecationEntry{Target: path, Message: message}
	for _, opt := range opts {
		opt(&template)
	}

	warn := func(obj *Object, key string, access Access) {
		entry := template
		entry.Property = key
		entry.Access = access
		obj.Class().warn(entry)
	}

	return Definition{
		Get: func(obj *Object, key string) any {
			warn(obj, key, AccessGet)
			return alias.Get(obj, key)
		},
		Set: func(obj *Object, key string, value any) error {
			warn(obj, key, AccessSet)
			return alias.Set(obj, key, value)
		},
	}
}

// Reads is a read-only alias of path falling back to def when the value is
// nil. A def that is a function without parameters returning one value, such
// as func() any or func() []string, is called on every such read, so each
// read gets a fresh value.
func Reads(path string, def any) Definition {
	fallback := supplier(def)

	return reading(path, func(v any) any {
		if v != nil {
			return v
		}

		return fallback()
	})
}

func supplier(def any) func() any {
	if fn, ok := def.(func() any); ok {
		return fn
	}

	rv := reflect.ValueOf(def)
	if rv.Kind() == reflect.Func && !rv.IsNil() && rv.Type().NumIn() == 0 && rv.Type().NumOut() == 1 {
		return func() any {
			return rv.Call(nil)[0].Interface()
		}
	}

	return func() any { return def }
}

// OverridableReads reads path until the property is first written; the write
// replaces the property on that object with a plain value, permanently
// disconnecting it from path.
func OverridableReads(path string) Definition {
	p := propath.MustParse(path)

	return Definition{
		Get: func(obj *Object, _ string) any {
			return p.Get(obj)
		},
		Set: func(obj *Object, key string, value any) error {
			obj.Override(key, value)
			return nil
		},
	}
}
