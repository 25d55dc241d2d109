// Package forms implements the clinical wizard engine: the form-state
// reducer, per-step validation, step navigation, and draft persistence that
// the donor, recipient and surgery data-entry flows share.
package forms

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Values is one wizard slice's form state: a tree of string/bool leaves and
// nested Values branches, addressed by dot paths ("examination.cvs.bp").
type Values map[string]any

// AsValues converts any decoded-JSON value into a Values tree, nil-safe.
// Anything that is not an object yields an empty tree.
func AsValues(v any) Values {
	switch m := v.(type) {
	case Values:
		return m
	case map[string]any:
		return Values(m)
	default:
		return Values{}
	}
}

// ToValues renders any JSON-shaped record (typically a canonical domain
// struct) as a Values tree. Used to seed a wizard with an entity's complete
// default-filled shape.
func ToValues(record any) Values {
	raw, err := json.Marshal(record)
	if err != nil {
		return Values{}
	}
	var v map[string]any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Values{}
	}
	return Values(v)
}

// Get resolves a dot path against the tree. The second return is false when
// any branch along the path is absent or not an object.
func Get(v Values, path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := v
	for i, part := range parts {
		val, ok := cur[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		switch m := val.(type) {
		case Values:
			cur = m
		case map[string]any:
			cur = Values(m)
		default:
			return nil, false
		}
	}
	return nil, false
}

// Str reads a string leaf, coercing JSON numbers and booleans. Absent or
// null leaves yield "".
func Str(v Values, key string) string {
	val, ok := Get(v, key)
	if !ok || val == nil {
		return ""
	}
	switch s := val.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}

// Flag reads a boolean leaf. Absent, null, or non-boolean leaves yield false;
// the strings "true"/"yes" are accepted for records that stored flags as text.
func Flag(v Values, key string) bool {
	val, ok := Get(v, key)
	if !ok || val == nil {
		return false
	}
	switch b := val.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "yes"
	default:
		return false
	}
}

// Child returns the nested object at key, or an empty tree when it is absent
// or not an object. Never nil.
func Child(v Values, key string) Values {
	val, ok := Get(v, key)
	if !ok {
		return Values{}
	}
	return AsValues(val)
}

// List returns the array of objects at key, or nil when absent.
func List(v Values, key string) []Values {
	val, ok := Get(v, key)
	if !ok {
		return nil
	}
	items, ok := val.([]any)
	if !ok {
		return nil
	}
	out := make([]Values, 0, len(items))
	for _, item := range items {
		out = append(out, AsValues(item))
	}
	return out
}

// Empty reports whether a leaf is missing, nil, or an empty string. Used by
// required-field validation; false booleans are NOT empty (an unticked flag
// is a valid answer).
func Empty(v Values, path string) bool {
	val, ok := Get(v, path)
	if !ok || val == nil {
		return true
	}
	s, isStr := val.(string)
	return isStr && strings.TrimSpace(s) == ""
}
