package score

import (
	"encoding/json"
	"strconv"
	"strings"
)

// truthy reports whether a decoded JSON value counts as present. Zero,
// empty strings, false and null are missing, as the web client expects.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	default:
		// Objects and arrays are always present.
		return true
	}
}

// tagValue renders a JSON value as a tag string: numbers in shortest form,
// arrays comma-joined, objects as "[object Object]".
func tagValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return x.String()
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if e != nil {
				parts[i] = tagValue(e)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}
