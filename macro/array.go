package macro

import (
	"math"
	"reflect"
	"slices"

	"github.com/shibukawa/propmacro/propath"
	"github.com/shopspring/decimal"
)

// toSlice copies a slice or array value into a fresh []any. Nil and
// non-collection values yield an empty slice.
func toSlice(value any) []any {
	if value == nil {
		return []any{}
	}

	if list, ok := value.([]any); ok {
		return slices.Clone(list)
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{}
	}

	result := make([]any, rv.Len())
	for i := range result {
		result[i] = rv.Index(i).Interface()
	}

	return result
}

// Collect returns the values at paths in order, without filtering.
func Collect(paths ...string) Definition {
	return readingAll(paths, func(values []any) any { return values })
}

// Diff returns the elements of the first collection that are not present in
// any of the following ones.
func Diff(paths ...string) Definition {
	return readingAll(paths, func(values []any) any {
		if len(values) == 0 {
			return []any{}
		}

		var excluded []any
		for _, v := range values[1:] {
			excluded = append(excluded, toSlice(v)...)
		}

		result := []any{}

		for _, item := range toSlice(values[0]) {
			if !contains(excluded, item) {
				result = append(result, item)
			}
		}

		return result
	})
}

// Intersect returns the elements of the first collection that are present in
// every following one.
func Intersect(paths ...string) Definition {
	return readingAll(paths, func(values []any) any {
		if len(values) == 0 {
			return []any{}
		}

		others := make([][]any, 0, len(values)-1)
		for _, v := range values[1:] {
			others = append(others, toSlice(v))
		}

		result := []any{}

		for _, item := range toSlice(values[0]) {
			inAll := true

			for _, other := range others {
				if !contains(other, item) {
					inAll = false
					break
				}
			}

			if inAll {
				result = append(result, item)
			}
		}

		return result
	})
}

// Union concatenates the collections, keeping the first occurrence of every
// value.
func Union(paths ...string) Definition {
	return readingAll(paths, func(values []any) any {
		result := []any{}

		for _, v := range values {
			for _, item := range toSlice(v) {
				if !contains(result, item) {
					result = append(result, item)
				}
			}
		}

		return result
	})
}

// Unique removes duplicates from the collection at path.
func Unique(path string) Definition {
	return Union(path)
}

// UniqueBy keeps the first element for every distinct value at key, which may
// be a dotted path into the element.
func UniqueBy(path, key string) Definition {
	k := propath.MustParse(key)

	return reading(path, func(v any) any {
		var seen []any

		result := []any{}

		for _, item := range toSlice(v) {
			kv := k.Get(item)
			if contains(seen, kv) {
				continue
			}

			seen = append(seen, kv)
			result = append(result, item)
		}

		return result
	})
}

// Filter keeps the elements of the collection at path accepted by fn.
func Filter(path string, fn func(item any) bool) Definition {
	return reading(path, func(v any) any {
		result := []any{}

		for _, item := range toSlice(v) {
			if fn(item) {
				result = append(result, item)
			}
		}

		return result
	})
}

// FilterBy keeps the elements whose member key equals value, or, when value
// is omitted, whose member key is truthy.
func FilterBy(path, key string, value ...any) Definition {
	k := propath.MustParse(key)

	if len(value) == 0 {
		return Filter(path, func(item any) bool { return Truthy(k.Get(item)) })
	}

	want := value[0]

	return Filter(path, func(item any) bool { return equalValues(k.Get(item), want) })
}

// Map transforms every element of the collection at path.
func Map(path string, fn func(item any) any) Definition {
	return reading(path, func(v any) any {
		list := toSlice(v)
		for i, item := range list {
			list[i] = fn(item)
		}

		return list
	})
}

// MapBy extracts member key from every element of the collection at path.
func MapBy(path, key string) Definition {
	k := propath.MustParse(key)

	return Map(path, func(item any) any { return k.Get(item) })
}

// Max returns the largest number of the collection at path as float64. An
// empty collection yields negative infinity and any non-numeric element NaN.
func Max(path string) Definition {
	return reading(path, func(v any) any {
		return extremum(toSlice(v), math.Inf(-1), math.Max)
	})
}

// Min returns the smallest number of the collection at path as float64. An
// empty collection yields positive infinity and any non-numeric element NaN.
func Min(path string) Definition {
	return reading(path, func(v any) any {
		return extremum(toSlice(v), math.Inf(1), math.Min)
	})
}

func extremum(list []any, seed float64, pick func(a, b float64) float64) float64 {
	result := seed

	for _, item := range list {
		result = pick(result, toNumber(item))
	}

	return result
}

// Sum adds up the collection at path starting from 0. Finite numbers are
// summed exactly before the result is converted to float64.
func Sum(path string) Definition {
	return reading(path, func(v any) any {
		total := decimal.Zero
		special := 0.0

		for _, item := range toSlice(v) {
			if d, ok := numeric(item); ok {
				total = total.Add(d)
				continue
			}

			f := toNumber(item)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				special += f
				continue
			}

			total = total.Add(decimal.NewFromFloat(f))
		}

		return total.InexactFloat64() + special
	})
}

// Sort returns a sorted copy of the collection at path. cmp follows the
// slices.SortFunc convention. The source collection is never modified.
func Sort(path string, cmp func(a, b any) int) Definition {
	return reading(path, func(v any) any {
		list := toSlice(v)
		slices.SortStableFunc(list, cmp)

		return list
	})
}

// SortBy returns a copy of the collection at path sorted ascending by member
// key. Unordered pairs keep their relative order.
func SortBy(path, key string) Definition {
	return sortBy(path, key, 1)
}

// SortByDescending is SortBy in descending order.
func SortByDescending(path, key string) Definition {
	return sortBy(path, key, -1)
}

func sortBy(path, key string, direction int) Definition {
	k := propath.MustParse(key)

	return Sort(path, func(a, b any) int {
		c, _ := compareValues(k.Get(a), k.Get(b))
		return c * direction
	})
}
