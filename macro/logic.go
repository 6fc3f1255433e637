package macro

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/shibukawa/propmacro/propath"
)

func parsePaths(paths []string) []propath.Path {
	parsed := make([]propath.Path, len(paths))
	for i, p := range paths {
		parsed[i] = propath.MustParse(p)
	}

	return parsed
}

// reading builds a read-only definition over the value at path.
func reading(path string, fn func(value any) any) Definition {
	p := propath.MustParse(path)

	return Computed(func(obj *Object) any {
		return fn(p.Get(obj))
	})
}

// readingAll builds a read-only definition over the values at paths.
func readingAll(paths []string, fn func(values []any) any) Definition {
	parsed := parsePaths(paths)

	return Computed(func(obj *Object) any {
		values := make([]any, len(parsed))
		for i, p := range parsed {
			values[i] = p.Get(obj)
		}

		return fn(values)
	})
}

// And folds the values at paths with a short-circuit logical AND. It returns
// the first falsy value, or the last value when all are truthy, or true when
// no path is given.
func And(paths ...string) Definition {
	parsed := parsePaths(paths)

	return Computed(func(obj *Object) any {
		var result any = true

		for _, p := range parsed {
			result = p.Get(obj)
			if !Truthy(result) {
				return result
			}
		}

		return result
	})
}

// Or folds the values at paths with a short-circuit logical OR. It returns
// the first truthy value, or the last value when none is, or false when no
// path is given.
func Or(paths ...string) Definition {
	parsed := parsePaths(paths)

	return Computed(func(obj *Object) any {
		var result any = false

		for _, p := range parsed {
			result = p.Get(obj)
			if Truthy(result) {
				return result
			}
		}

		return result
	})
}

// Bool reports the truthiness of the value at path.
func Bool(path string) Definition {
	return reading(path, func(v any) any { return Truthy(v) })
}

// Not negates the truthiness of the value at path.
func Not(path string) Definition {
	return reading(path, func(v any) any { return !Truthy(v) })
}

// Empty reports whether the value at path is falsy or an empty slice or
// array. Empty maps and structs are not empty.
func Empty(path string) Definition {
	return reading(path, func(v any) any { return isEmpty(v) })
}

// NotEmpty is the negation of Empty.
func NotEmpty(path string) Definition {
	return reading(path, func(v any) any { return !isEmpty(v) })
}

func isEmpty(v any) bool {
	if !Truthy(v) {
		return true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}

	return (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Len() == 0
}

// Nullish reports whether the value at path is nil.
func Nullish(path string) Definition {
	return reading(path, func(v any) any { return v == nil })
}

// Equal reports whether the value at path equals value.
func Equal(path string, value any) Definition {
	return reading(path, func(v any) any { return equalValues(v, value) })
}

// GT reports whether the value at path is greater than value.
func GT(path string, value any) Definition {
	return relation(path, value, func(c int) bool { return c > 0 })
}

// GTE reports whether the value at path is greater than or equal to value.
func GTE(path string, value any) Definition {
	return relation(path, value, func(c int) bool { return c >= 0 })
}

// LT reports whether the value at path is less than value.
func LT(path string, value any) Definition {
	return relation(path, value, func(c int) bool { return c < 0 })
}

// LTE reports whether the value at path is less than or equal to value.
func LTE(path string, value any) Definition {
	return relation(path, value, func(c int) bool { return c <= 0 })
}

func relation(path string, value any, accept func(int) bool) Definition {
	return reading(path, func(v any) any {
		c, ok := compareValues(v, value)
		return ok && accept(c)
	})
}

// Match tests the value at path against re. Only strings, byte slices and
// fmt.Stringer values can match.
func Match(path string, re *regexp.Regexp) Definition {
	return reading(path, func(v any) any {
		if s, ok := stringOf(v); ok {
			return re.MatchString(s)
		}

		if s, ok := v.(fmt.Stringer); ok {
			return re.MatchString(s.String())
		}

		return false
	})
}
