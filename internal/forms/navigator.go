package forms

import (
	"errors"
	"fmt"
)

// ErrForwardJump is returned when a jump targets a step more than one ahead
// of the cursor.
var ErrForwardJump = errors.New("cannot jump past the next step")

// ErrHiddenStep is returned when a jump targets a step that is currently
// hidden by its visibility predicate.
var ErrHiddenStep = errors.New("step is not visible")

// Navigator maintains the step cursor of one wizard. The cursor always sits
// on a visible step; hidden steps are skipped in both directions. Validation
// gates forward movement only.
type Navigator struct {
	kind   Kind
	steps  []Step
	cursor int
}

// NewNavigator creates a navigator for the given form kind, positioned on
// step 0.
func NewNavigator(kind Kind) *Navigator {
	return &Navigator{kind: kind, steps: stepDefs[kind]}
}

// Current returns the cursor as a declared-step index.
func (n *Navigator) Current() int { return n.cursor }

// StepName returns the declared name of the current step.
func (n *Navigator) StepName() string { return n.steps[n.cursor].Name }

// Restore places the cursor on a previously saved step index, clamping out-of-
// range values from stale drafts.
func (n *Navigator) Restore(step int) {
	if step < 0 {
		step = 0
	}
	if step >= len(n.steps) {
		step = len(n.steps) - 1
	}
	n.cursor = step
}

func (n *Navigator) visible(i int, values Values) bool {
	s := n.steps[i]
	return s.Visible == nil || s.Visible(values)
}

// nextVisible returns the first visible index after i, or -1.
func (n *Navigator) nextVisible(i int, values Values) int {
	for j := i + 1; j < len(n.steps); j++ {
		if n.visible(j, values) {
			return j
		}
	}
	return -1
}

// prevVisible returns the first visible index before i, or -1.
func (n *Navigator) prevVisible(i int, values Values) int {
	for j := i - 1; j >= 0; j-- {
		if n.visible(j, values) {
			return j
		}
	}
	return -1
}

// AtEnd reports whether the cursor is on the final visible step (the
// confirmation step).
func (n *Navigator) AtEnd(values Values) bool {
	return n.nextVisible(n.cursor, values) == -1
}

// Next validates the current step and, when clean, advances to the next
// visible step. On validation failure the cursor is unchanged and the field
// errors are returned; the caller may retry after correction.
func (n *Navigator) Next(values Values) map[string]string {
	if errs := Validate(n.kind, n.cursor, values); len(errs) > 0 {
		return errs
	}
	if next := n.nextVisible(n.cursor, values); next != -1 {
		n.cursor = next
	}
	return nil
}

// Previous retreats unconditionally to the previous visible step. At step 0
// it stays put.
func (n *Navigator) Previous(values Values) {
	if prev := n.prevVisible(n.cursor, values); prev != -1 {
		n.cursor = prev
	}
}

// JumpTo moves directly to step i. Backward jumps (and the current step) are
// always allowed; a jump to the immediately next visible step validates the
// current step first; anything further forward is rejected.
func (n *Navigator) JumpTo(i int, values Values) (map[string]string, error) {
	if i < 0 || i >= len(n.steps) {
		return nil, fmt.Errorf("step %d out of range", i)
	}
	if !n.visible(i, values) {
		return nil, ErrHiddenStep
	}
	if i <= n.cursor {
		n.cursor = i
		return nil, nil
	}
	if i == n.nextVisible(n.cursor, values) {
		if errs := Validate(n.kind, n.cursor, values); len(errs) > 0 {
			return errs, nil
		}
		n.cursor = i
		return nil, nil
	}
	return nil, ErrForwardJump
}
