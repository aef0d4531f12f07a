package flatdiff

import (
	"fmt"
	"math"
	"reflect"
)

// Normalize converts a value decoded by any of the supported parsers into a
// canonical form: maps become map[string]any, slices become []any, every
// integer becomes int64 and integral floats become int64 as well. Parsers
// disagree on numeric types (TOML int64, YAML int, JSON float64), and
// comparisons only make sense after this step.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil, string, bool, int64:
		return v
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case float32:
		return normalizeFloat(float64(t))
	case float64:
		return normalizeFloat(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint())
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}
		return out
	}
	return v
}

// NormalizeTree is Normalize for a whole tree.
func NormalizeTree(tree map[string]any) map[string]any {
	if tree == nil {
		return map[string]any{}
	}
	return Normalize(tree).(map[string]any)
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

// Equal compares two leaf values after normalization.
func Equal(a, b any) bool {
	return reflect.DeepEqual(Normalize(a), Normalize(b))
}
