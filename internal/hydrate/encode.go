package hydrate

import (
	"fmt"
	"reflect"
	"strings"
)

// Encode flattens value into a plain object keyed by its JSON field names.
// value must be a map with string keys or a struct (or a pointer to either).
// Field values are kept as-is so numeric types survive; only the key naming
// follows encoding/json: tag names, "-" and omitempty, with fields of
// exported embedded structs promoted unless a shallower field claims the name.
func Encode(value any) (map[string]any, error) {
	if value == nil {
		return nil, fmt.Errorf("hydrate: value is nil")
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("hydrate: value of type %T is nil", value)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("hydrate: map of type %T must have string keys", value)
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	case reflect.Struct:
		out := make(map[string]any)
		encodeStruct(rv, out)
		return out, nil
	}
	return nil, fmt.Errorf("hydrate: value of type %T is not an object", value)
}

func encodeStruct(rv reflect.Value, out map[string]any) {
	rt := rv.Type()
	var embedded []reflect.Value
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, options, _ := strings.Cut(tag, ",")
		fv := rv.Field(i)

		if field.Anonymous && name == "" {
			inner := fv
			if inner.Kind() == reflect.Pointer {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct {
				if field.IsExported() {
					embedded = append(embedded, inner)
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		if hasOption(options, "omitempty") && isEmpty(fv) {
			continue
		}
		out[name] = fv.Interface()
	}

	for _, inner := range embedded {
		promoted := make(map[string]any)
		encodeStruct(inner, promoted)
		for name, value := range promoted {
			if _, taken := out[name]; !taken {
				out[name] = value
			}
		}
	}
}

func hasOption(options, want string) bool {
	for options != "" {
		var option string
		option, options, _ = strings.Cut(options, ",")
		if option == want {
			return true
		}
	}
	return false
}

// isEmpty mirrors the omitempty rule of encoding/json.
func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
