package grid

import (
	"fmt"
	"reflect"

	"github.com/zhubert/datagrid/internal/layout"
)

// Column describes one table column over rows of type T.
//
// The value is read with Value when set, else by Key: a struct field name
// or a map key. Render, when set, turns the value into cell text.
type Column[T any] struct {
	layout.Descriptor

	Key    string
	Value  func(row T) any
	Render func(value any, row T, rowIndex int) string
}

// Extract returns the raw cell value for row.
func (c Column[T]) Extract(row T) any {
	if c.Value != nil {
		return c.Value(row)
	}
	key := c.Key
	if key == "" {
		key = c.ID
	}
	return lookup(row, key)
}

// Text returns the rendered cell text for row.
func (c Column[T]) Text(row T, rowIndex int) string {
	v := c.Extract(row)
	if c.Render != nil {
		return c.Render(v, row, rowIndex)
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func lookup(row any, key string) any {
	rv := reflect.ValueOf(row)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	case reflect.Struct:
		f := rv.FieldByName(key)
		if !f.IsValid() || !f.CanInterface() {
			return nil
		}
		return f.Interface()
	}
	return nil
}

func descriptors[T any](cols []Column[T]) []layout.Descriptor {
	out := make([]layout.Descriptor, len(cols))
	for i, c := range cols {
		out[i] = c.Descriptor
	}
	return out
}
