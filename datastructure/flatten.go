package datastructure

import "reflect"

// Flatten returns the leaves of an arbitrarily nested slice or array in
// order. Strings and byte slices are leaves, not sequences. A non-slice
// argument is returned as the only element; nil yields an empty result.
func Flatten(v any) []any {
	out := []any{}
	return flatten(reflect.ValueOf(v), out)
}

func flatten(v reflect.Value, out []any) []any {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return append(out, nil)
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return out
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return append(out, v.Interface())
		}
		for i := 0; i < v.Len(); i++ {
			out = flatten(v.Index(i), out)
		}
		return out
	}
	return append(out, v.Interface())
}
