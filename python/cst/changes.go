package cst

import (
	"fmt"
	"reflect"
)

// ShapeError reports a structural violation: a change or rewrite that
// would produce a node the grammar cannot represent.
type ShapeError struct {
	Type    string
	Field   string
	Message string
}

func (e *ShapeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("cst: %s.%s: %s", e.Type, e.Field, e.Message)
	}
	return fmt.Sprintf("cst: %s: %s", e.Type, e.Message)
}

// Changes maps exported field names to replacement values.
type Changes map[string]any

// WithChanges returns a copy of node with the named fields replaced. The
// original node is untouched and all other fields are shared. Naming a
// field the node does not have, or supplying a value of the wrong type,
// yields a *ShapeError.
func WithChanges[T Node](node T, changes Changes) (T, error) {
	var zero T
	rv := reflect.ValueOf(node)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return zero, &ShapeError{Type: fmt.Sprintf("%T", node), Message: "nil node"}
	}
	cp := reflect.New(rv.Type().Elem())
	cp.Elem().Set(rv.Elem())
	typ := rv.Type().Elem().Name()

	for name, val := range changes {
		f := cp.Elem().FieldByName(name)
		if !f.IsValid() || !f.CanSet() {
			return zero, &ShapeError{Type: typ, Field: name, Message: "no such field"}
		}
		if val == nil {
			switch f.Kind() {
			case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
				f.Set(reflect.Zero(f.Type()))
			default:
				return zero, &ShapeError{Type: typ, Field: name, Message: "field cannot be nil"}
			}
			continue
		}
		v := reflect.ValueOf(val)
		if !v.Type().AssignableTo(f.Type()) {
			return zero, &ShapeError{
				Type: typ, Field: name,
				Message: fmt.Sprintf("cannot assign %T", val),
			}
		}
		f.Set(v)
	}
	return cp.Interface().(T), nil
}

func shallowCopy(n Node) Node {
	rv := reflect.ValueOf(n).Elem()
	cp := reflect.New(rv.Type())
	cp.Elem().Set(rv)
	return cp.Interface().(Node)
}
