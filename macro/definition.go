package macro

// GetFunc derives the value of a virtual property. It receives the owning
// object and the name the property is installed under, so one function can
// back several differently named properties.
type GetFunc func(obj *Object, key string) any

// SetFunc receives writes to a virtual property.
type SetFunc func(obj *Object, key string, value any) error

// Definition is an installable accessor. Reads of a property without Get yield
// nil; writes to a property without Set fail with ErrNoSetter.
type Definition struct {
	Get GetFunc
	Set SetFunc
}

// Macro builds a definition from a getter and setter pair. Either may be nil.
func Macro(get GetFunc, set SetFunc) Definition {
	return Definition{Get: get, Set: set}
}

// Computed builds a read-only definition from a derivation function.
func Computed(fn func(obj *Object) any) Definition {
	return Definition{
		Get: func(obj *Object, _ string) any {
			return fn(obj)
		},
	}
}

// ReadOnly reports whether the definition rejects writes.
func (d Definition) ReadOnly() bool {
	return d.Set == nil
}
