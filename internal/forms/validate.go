package forms

// Kind identifies a wizard form.
type Kind string

const (
	KindDonor     Kind = "donor"
	KindRecipient Kind = "recipient"
	KindSurgery   Kind = "surgery"
)

// Valid reports whether k names a registered wizard.
func (k Kind) Valid() bool {
	_, ok := stepDefs[k]
	return ok
}

// Field declares one required entry on a wizard step.
type Field struct {
	// Path is the dot path into the form values; it doubles as the error key.
	Path    string
	Message string
	// When, if set, makes the requirement conditional on the whole form state
	// (e.g. a relationship type only required once a donor is selected).
	When func(Values) bool
}

// Step is one declared wizard step.
type Step struct {
	Name     string
	Required []Field
	// Visible, if set, is evaluated against the current values; hidden steps
	// are skipped by navigation. Nil means always visible.
	Visible func(Values) bool
}

// Steps returns the declared step sequence for a form kind.
func Steps(kind Kind) []Step {
	return stepDefs[kind]
}

// Validate checks only the fields declared on the given step against the full
// form state and returns field-path -> message for each violation. An empty
// map means the step may proceed. Pure: identical input yields identical
// output, and fields belonging to other steps are never reported.
func Validate(kind Kind, step int, values Values) map[string]string {
	steps := stepDefs[kind]
	if step < 0 || step >= len(steps) {
		return map[string]string{}
	}

	errs := map[string]string{}
	for _, f := range steps[step].Required {
		if f.When != nil && !f.When(values) {
			continue
		}
		if Empty(values, f.Path) {
			errs[f.Path] = f.Message
		}
	}
	return errs
}
