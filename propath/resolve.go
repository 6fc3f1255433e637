package propath

import (
	"fmt"
	"reflect"
)

// Getter is implemented by keyed containers that expose their members through
// a lookup method instead of plain fields. Get returns nil for absent keys.
type Getter interface {
	Get(key string) any
}

// Setter is implemented by keyed containers that accept writes by key.
type Setter interface {
	Set(key string, value any) error
}

// Get resolves a dotted path against root.
// A nil value met on the way ends the traversal and nil is returned; missing
// members resolve to nil as well. A malformed path resolves to nil.
func Get(root any, path string) any {
	p, err := Parse(path)
	if err != nil {
		return nil
	}

	return p.Get(root)
}

// GetAll resolves every path independently and returns the values in the
// order of paths.
func GetAll(root any, paths ...string) []any {
	result := make([]any, len(paths))
	for i, path := range paths {
		result[i] = Get(root, path)
	}

	return result
}

// Set assigns value to the member named by the last segment of path, inside
// the container resolved from the preceding segments. Intermediate containers
// are never created.
func Set(root any, path string, value any) error {
	p, err := Parse(path)
	if err != nil {
		return err
	}

	return p.Set(root, value)
}

// Get resolves the path against root.
func (p Path) Get(root any) any {
	rv, _ := walk(reflect.ValueOf(root), p)
	return interfaceOf(rv)
}

// Set assigns value at the path below root.
func (p Path) Set(root any, value any) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	rootValue := reflect.ValueOf(root)
	if isNil(rootValue) {
		return fmt.Errorf("%w: root is nil while assigning %q", ErrNilContainer, p.String())
	}

	containerPath, key := p.Container()

	container, failedAt := walk(rootValue, containerPath)
	if failedAt >= 0 {
		return fmt.Errorf("%w: %q is nil while assigning %q", ErrNilContainer, containerPath[:failedAt+1].String(), p.String())
	}

	container, setter := deref(container)
	if setter != nil {
		return setter.Set(key, value)
	}

	if !container.IsValid() {
		return fmt.Errorf("%w: %q is nil while assigning %q", ErrNilContainer, containerPath.String(), p.String())
	}

	if err := assign(container, key, value); err != nil {
		return fmt.Errorf("failed to assign %q: %w", p.String(), err)
	}

	return nil
}

// walk follows segments from rv. It returns the reached value and the index of
// the segment whose value was nil, or -1 when every segment was traversed.
func walk(rv reflect.Value, segments Path) (reflect.Value, int) {
	for i, seg := range segments {
		rv = member(rv, seg.Name)
		if isNil(rv) && i < len(segments)-1 {
			return reflect.Value{}, i
		}
	}

	return rv, -1
}

// member reads a single member of rv, preferring a Getter capability over
// direct member access.
func member(rv reflect.Value, name string) reflect.Value {
	rv, getter := derefGetter(rv)
	if getter != nil {
		return reflect.ValueOf(getter.Get(name))
	}

	if !rv.IsValid() {
		return reflect.Value{}
	}

	switch rv.Kind() {
	case reflect.Map:
		key, ok := mapKey(rv.Type().Key(), name)
		if !ok {
			return reflect.Value{}
		}

		return rv.MapIndex(key)
	case reflect.Struct:
		index, ok := findField(rv.Type(), name)
		if !ok {
			return reflect.Value{}
		}

		field, err := rv.FieldByIndexErr(index)
		if err != nil {
			return reflect.Value{}
		}

		return field
	case reflect.Slice, reflect.Array:
		if name == "length" {
			return reflect.ValueOf(rv.Len())
		}

		idx, ok := sliceIndex(name)
		if !ok || idx >= rv.Len() {
			return reflect.Value{}
		}

		return rv.Index(idx)
	}

	return reflect.Value{}
}

// derefGetter strips pointers and interfaces, stopping at the first value that
// implements Getter.
func derefGetter(rv reflect.Value) (reflect.Value, Getter) {
	for rv.IsValid() {
		if isNil(rv) {
			return reflect.Value{}, nil
		}

		if g, ok := capability[Getter](rv); ok {
			return rv, g
		}

		if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
			return rv, nil
		}

		rv = rv.Elem()
	}

	return rv, nil
}

// deref is derefGetter for the Setter capability.
func deref(rv reflect.Value) (reflect.Value, Setter) {
	for rv.IsValid() {
		if isNil(rv) {
			return reflect.Value{}, nil
		}

		if s, ok := capability[Setter](rv); ok {
			return rv, s
		}

		if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
			return rv, nil
		}

		rv = rv.Elem()
	}

	return rv, nil
}

func capability[T any](rv reflect.Value) (T, bool) {
	var zero T

	if rv.CanInterface() {
		if c, ok := rv.Interface().(T); ok {
			return c, true
		}
	}

	if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface && rv.CanAddr() {
		addr := rv.Addr()
		if addr.CanInterface() {
			if c, ok := addr.Interface().(T); ok {
				return c, true
			}
		}
	}

	return zero, false
}

func isNil(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}

	return false
}

// interfaceOf converts a reached value back to any. Typed nils collapse to a
// plain nil so callers can compare against nil.
func interfaceOf(rv reflect.Value) any {
	if isNil(rv) || !rv.CanInterface() {
		return nil
	}

	return rv.Interface()
}
