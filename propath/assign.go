// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package propath

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// assign writes value into the member key of container by direct access.
func assign(container reflect.Value, key string, value any) error {
	switch container.Kind() {
	case reflect.Map:
		mk, ok := mapKey(container.Type().Key(), key)
		if !ok {
			return fmt.Errorf("%w: map key type %s", ErrUnsupportedContainer, container.Type().Key())
		}

		converted, err := convertValue(value, container.Type().Elem())
		if err != nil {
			return err
		}

		container.SetMapIndex(mk, converted)

		return nil
	case reflect.Struct:
		if !container.CanAddr() {
			return fmt.Errorf("%w: %s", ErrNotAddressable, container.Type())
		}

		index, ok := findField(container.Type(), key)
		if !ok {
			return fmt.Errorf("%w: %s.%s", ErrFieldNotFound, container.Type(), key)
		}

		field, err := container.FieldByIndexErr(index)
		if err != nil {
			return fmt.Errorf("%w: %s.%s: %w", ErrNilContainer, container.Type(), key, err)
		}

		if !field.CanSet() {
			return fmt.Errorf("%w: %s.%s is not settable", ErrFieldNotFound, container.Type(), key)
		}

		converted, err := convertValue(value, field.Type())
		if err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}

		field.Set(converted)

		return nil
	case reflect.Slice, reflect.Array:
		idx, ok := sliceIndex(key)
		if !ok || idx >= container.Len() {
			return fmt.Errorf("%w: %s (len %d)", ErrIndexOutOfRange, key, container.Len())
		}

		elem := container.Index(idx)
		if !elem.CanSet() {
			return fmt.Errorf("%w: %s", ErrNotAddressable, container.Type())
		}

		converted, err := convertValue(value, elem.Type())
		if err != nil {
			return err
		}

		elem.Set(converted)

		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedContainer, container.Type())
}

// findField looks a struct field up by `prop` tag, `json` tag, Go name and
// finally case-insensitive Go name. Only exported fields are visible.
func findField(t reflect.Type, name string) ([]int, bool) {
	fields := reflect.VisibleFields(t)

	match := func(pred func(f reflect.StructField) bool) ([]int, bool) {
		for _, f := range fields {
			if !f.IsExported() || f.Anonymous {
				continue
			}

			if pred(f) {
				return f.Index, true
			}
		}

		return nil, false
	}

	if index, ok := match(func(f reflect.StructField) bool { return tagName(f, "prop") == name }); ok {
		return index, true
	}

	if index, ok := match(func(f reflect.StructField) bool { return tagName(f, "json") == name }); ok {
		return index, true
	}

	if index, ok := match(func(f reflect.StructField) bool { return f.Name == name }); ok {
		return index, true
	}

	fold := cases.Fold()
	folded := fold.String(name)

	return match(func(f reflect.StructField) bool { return fold.String(f.Name) == folded })
}

func tagName(f reflect.StructField, key string) string {
	tag := f.Tag.Get(key)
	if tag == "" || tag == "-" {
		return ""
	}

	name, _, _ := strings.Cut(tag, ",")

	return name
}

func mapKey(keyType reflect.Type, name string) (reflect.Value, bool) {
	switch keyType.Kind() {
	case reflect.String:
		return reflect.ValueOf(name).Convert(keyType), true
	case reflect.Interface:
		if reflect.TypeOf(name).AssignableTo(keyType) {
			return reflect.ValueOf(name), true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(name, 10, keyType.Bits())
		if err != nil {
			return reflect.Value{}, false
		}

		return reflect.ValueOf(i).Convert(keyType), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(name, 10, keyType.Bits())
		if err != nil {
			return reflect.Value{}, false
		}

		return reflect.ValueOf(u).Convert(keyType), true
	}

	return reflect.Value{}, false
}

func sliceIndex(name string) (int, bool) {
	idx, err := strconv.Atoi(name)
	if err != nil || idx < 0 {
		return 0, false
	}

	return idx, true
}

// convertValue converts a value to the target type
func convertValue(value any, targetType reflect.Type) (reflect.Value, error) {
	// Handle nil values for nillable types
	if value == nil {
		switch targetType.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(targetType), nil
		}

		return reflect.Value{}, fmt.Errorf("%w %s", ErrCannotAssignNil, targetType)
	}

	valueType := reflect.TypeOf(value)

	// Direct assignment if types match
	if valueType.AssignableTo(targetType) {
		return reflect.ValueOf(value), nil
	}

	// Handle pointer types
	if targetType.Kind() == reflect.Pointer {
		elemType := targetType.Elem()
		if valueType.AssignableTo(elemType) {
			ptrValue := reflect.New(elemType)
			ptrValue.Elem().Set(reflect.ValueOf(value))

			return ptrValue, nil
		}
	}

	// Handle conversion from pointer to value
	if valueType.Kind() == reflect.Pointer && !reflect.ValueOf(value).IsNil() {
		elemValue := reflect.ValueOf(value).Elem()
		if elemValue.Type().AssignableTo(targetType) {
			return elemValue, nil
		}
	}

	// Numeric widening and narrowing, e.g. float64 decoded from YAML into an int field
	if isNumericKind(valueType.Kind()) && isNumericKind(targetType.Kind()) {
		return convertNumber(reflect.ValueOf(value), targetType)
	}

	return reflect.Value{}, fmt.Errorf("%w %s to %s", ErrCannotConvert, valueType, targetType)
}

// convertNumber converts between numeric kinds, rejecting conversions that
// would wrap, truncate a fraction or change sign.
func convertNumber(src reflect.Value, targetType reflect.Type) (reflect.Value, error) {
	lossy := func() (reflect.Value, error) {
		return reflect.Value{}, fmt.Errorf("%w %s(%v) to %s without loss", ErrCannotConvert, src.Type(), src.Interface(), targetType)
	}

	target := reflect.New(targetType).Elem()

	switch {
	case target.CanInt():
		var i int64

		switch {
		case src.CanInt():
			i = src.Int()
		case src.CanUint():
			if src.Uint() > math.MaxInt64 {
				return lossy()
			}

			i = int64(src.Uint())
		default:
			f := src.Float()
			if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
				return lossy()
			}

			i = int64(f)
		}

		if target.OverflowInt(i) {
			return lossy()
		}
	case target.CanUint():
		var u uint64

		switch {
		case src.CanInt():
			if src.Int() < 0 {
				return lossy()
			}

			u = uint64(src.Int())
		case src.CanUint():
			u = src.Uint()
		default:
			f := src.Float()
			if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
				return lossy()
			}

			u = uint64(f)
		}

		if target.OverflowUint(u) {
			return lossy()
		}
	default:
		if src.CanFloat() && target.OverflowFloat(src.Float()) {
			return lossy()
		}
	}

	return src.Convert(targetType), nil
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}

	return false
}
