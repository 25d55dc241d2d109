package forms

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPath reports a field path whose spine does not traverse existing
// objects. Paths arriving over HTTP are checked against this before reduction;
// Reduce itself still panics, since an unchecked path from internal code is a
// programmer error.
var ErrInvalidPath = errors.New("invalid field path")

// CheckPath verifies that every segment of the path except the leaf resolves
// to an existing object in the tree. The leaf itself may be absent (updates
// are allowed to introduce new leaves on an existing branch).
func CheckPath(m Values, path string) error {
	parts := strings.Split(path, ".")
	for _, key := range parts[:len(parts)-1] {
		child, ok := m[key]
		if !ok {
			return fmt.Errorf("%w: %q has no branch %q", ErrInvalidPath, path, key)
		}
		switch c := child.(type) {
		case Values:
			m = c
		case map[string]any:
			m = Values(c)
		default:
			return fmt.Errorf("%w: %q does not name an object at %q", ErrInvalidPath, path, key)
		}
	}
	return nil
}

// State holds one Values tree per independent wizard slice ("donorForm",
// "recipientForm", ...). Reduce never mutates its input: an update to one
// slice leaves every other slice reference-equal.
type State map[string]Values

// Action is a state transition applied by Reduce.
type Action interface {
	isAction()
}

// UpdateField replaces the leaf at Path inside the named slice. Every
// ancestor object along the path is shallow-copied; sibling branches keep
// their identity.
type UpdateField struct {
	Form  string
	Path  string
	Value any
}

// SetFormData shallow-merges Data onto the named slice's top level. Used for
// bulk population from search results or fetched records.
type SetFormData struct {
	Form string
	Data Values
}

func (UpdateField) isAction() {}
func (SetFormData) isAction() {}

// Reduce applies an action and returns the next state. The input state is
// never modified. A path through a non-existent or non-object branch is a
// programmer error and panics.
func Reduce(s State, a Action) State {
	next := make(State, len(s))
	for k, v := range s {
		next[k] = v
	}

	switch act := a.(type) {
	case UpdateField:
		slice, ok := s[act.Form]
		if !ok {
			panic(fmt.Sprintf("forms: unknown slice %q", act.Form))
		}
		next[act.Form] = setPath(slice, act.Form, strings.Split(act.Path, "."), act.Value)
	case SetFormData:
		slice, ok := s[act.Form]
		if !ok {
			panic(fmt.Sprintf("forms: unknown slice %q", act.Form))
		}
		merged := make(Values, len(slice)+len(act.Data))
		for k, v := range slice {
			merged[k] = v
		}
		for k, v := range act.Data {
			merged[k] = v
		}
		next[act.Form] = merged
	default:
		panic(fmt.Sprintf("forms: unknown action %T", a))
	}
	return next
}

// setPath copies the spine from the slice root down to the changed leaf.
func setPath(m Values, form string, parts []string, value any) Values {
	out := make(Values, len(m)+1)
	for k, v := range m {
		out[k] = v
	}

	key := parts[0]
	if len(parts) == 1 {
		out[key] = value
		return out
	}

	child, ok := m[key]
	if !ok {
		panic(fmt.Sprintf("forms: path %q does not exist in slice %q", key, form))
	}
	childMap, isMap := child.(Values)
	if !isMap {
		raw, isRaw := child.(map[string]any)
		if !isRaw {
			panic(fmt.Sprintf("forms: path %q in slice %q is not an object", key, form))
		}
		childMap = Values(raw)
	}
	out[key] = setPath(childMap, form, parts[1:], value)
	return out
}
