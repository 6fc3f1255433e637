package macro

import (
	"fmt"
	"maps"
	"reflect"

	"github.com/shibukawa/propmacro/propath"
)

// Class is a named table of virtual properties shared by all of its objects.
// Properties are installed with Define while the class is being set up; a
// Class is not safe for concurrent Define and access.
type Class struct {
	name   string
	props  map[string]Definition
	order  []string
	logger LoggerFunc
}

// ClassOption configures a Class.
type ClassOption func(*Class)

// WithLogger sets the sink receiving deprecation warnings.
func WithLogger(logger LoggerFunc) ClassOption {
	return func(c *Class) {
		c.logger = logger
	}
}

// NewClass creates an empty class.
func NewClass(name string, opts ...ClassOption) *Class {
	c := &Class{
		name:   name,
		props:  make(map[string]Definition),
		logger: StderrLogger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Define installs def as the virtual property key. Installing the same
// definition under several keys is allowed. Redefining a key replaces it.
func (c *Class) Define(key string, def Definition) *Class {
	if _, exists := c.props[key]; !exists {
		c.order = append(c.order, key)
	}

	c.props[key] = def

	return c
}

// Property returns the definition installed under key.
func (c *Class) Property(key string) (Definition, bool) {
	def, ok := c.props[key]
	return def, ok
}

// Keys returns the virtual property names in definition order.
func (c *Class) Keys() []string {
	return append([]string(nil), c.order...)
}

// New creates an object of the class backed by target. Plain members are read
// from and written to target; a nil target is replaced by an empty map.
func (c *Class) New(target any) *Object {
	if target == nil {
		target = make(map[string]any)
	}

	return &Object{class: c, target: target}
}

func (c *Class) warn(entry DeprecationEntry) {
	if c.logger == nil {
		return
	}

	entry.Class = c.name
	c.logger(entry)
}

// Object is an instance of a Class. It implements propath.Getter and
// propath.Setter, so dotted paths traverse virtual properties transparently.
type Object struct {
	class     *Class
	target    any
	overrides map[string]any
}

var (
	_ propath.Getter = (*Object)(nil)
	_ propath.Setter = (*Object)(nil)
)

// Class returns the class of the object.
func (o *Object) Class() *Class {
	return o.class
}

// Target returns the backing value holding plain members.
func (o *Object) Target() any {
	return o.target
}

// Get reads key. Overridden properties return their stored value, virtual
// properties are recomputed on every read, anything else is read from the
// target.
func (o *Object) Get(key string) any {
	if v, ok := o.overrides[key]; ok {
		return v
	}

	if def, ok := o.class.props[key]; ok {
		if def.Get == nil {
			return nil
		}

		return def.Get(o, key)
	}

	return propath.Path{{Name: key}}.Get(o.target)
}

// Set writes key. Writing a virtual property without setter fails with
// ErrNoSetter.
func (o *Object) Set(key string, value any) error {
	if _, ok := o.overrides[key]; ok {
		o.overrides[key] = value
		return nil
	}

	if def, ok := o.class.props[key]; ok {
		if def.Set == nil {
			return fmt.Errorf("%w: %s.%s", ErrNoSetter, o.class.name, key)
		}

		return def.Set(o, key, value)
	}

	return propath.Path{{Name: key}}.Set(o.target, value)
}

// Override replaces the virtual property key on this object with a plain
// writable value. The property no longer runs its definition afterwards.
func (o *Object) Override(key string, value any) {
	if o.overrides == nil {
		o.overrides = make(map[string]any)
	}

	o.overrides[key] = value
}

// Overridden reports whether key was replaced by Override.
func (o *Object) Overridden(key string) bool {
	_, ok := o.overrides[key]
	return ok
}

// Snapshot evaluates every virtual property together with the plain members
// of a map or struct target.
func (o *Object) Snapshot() map[string]any {
	result := make(map[string]any)

	switch t := o.target.(type) {
	case map[string]any:
		maps.Copy(result, t)
	default:
		rv := reflect.Indirect(reflect.ValueOf(o.target))
		if rv.Kind() == reflect.Struct {
			for _, f := range reflect.VisibleFields(rv.Type()) {
				if !f.IsExported() || f.Anonymous {
					continue
				}

				if field, err := rv.FieldByIndexErr(f.Index); err == nil {
					result[f.Name] = field.Interface()
				}
			}
		}
	}

	for _, key := range o.class.order {
		result[key] = o.Get(key)
	}

	return result
}
