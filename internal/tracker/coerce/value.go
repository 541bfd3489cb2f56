// Package coerce turns loosely typed request values into numbers and dates
// without rejecting anything. Every parse returns a tagged result that keeps
// the raw input when it could not be interpreted.
package coerce

import (
	"math"
	"strconv"
	"strings"
)

type undefined struct{}

// Undefined marks a field that was not present in the request at all.
// It is distinct from nil, which stands for an explicit JSON null.
var Undefined any = undefined{}

func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// Truthy reports whether a raw value counts as provided.
func Truthy(v any) bool {
	switch t := v.(type) {
	case undefined, nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	default:
		return true
	}
}

// ToString renders a raw value as text the way it would print in a JSON
// client: numbers in shortest form, null as "null", absent as "".
func ToString(v any) string {
	switch t := v.(type) {
	case undefined:
		return ""
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	case int:
		return strconv.Itoa(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			if e == nil || IsUndefined(e) {
				continue
			}
			parts[i] = ToString(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return ""
	}
}
