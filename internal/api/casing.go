package api

import (
	"strings"
	"unicode"
)

// The storage layer speaks snake_case, the JSON boundary camelCase. These
// two transforms walk a decoded JSON value (map/slice/primitive, the shape
// encoding/json produces) and rename every object key recursively; values
// other than objects and arrays pass through untouched.

func SnakeToCamelKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[snakeToCamel(k)] = SnakeToCamelKeys(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = SnakeToCamelKeys(t[i])
		}
		return out
	default:
		return v
	}
}

func CamelToSnakeKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[camelToSnake(k)] = CamelToSnakeKeys(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = CamelToSnakeKeys(t[i])
		}
		return out
	default:
		return v
	}
}

func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	first := true
	for _, p := range parts {
		if p == "" {
			continue
		}
		if first {
			b.WriteString(p)
			first = false
			continue
		}
		r := []rune(p)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
