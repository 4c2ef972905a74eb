package triage

import "fmt"

// AnswersMismatchError is returned when the supplementary answers were
// collected for a different service than the one selected.
type AnswersMismatchError struct {
	Selected Kind
	Got      Kind
}

func (e *AnswersMismatchError) Error() string {
	if e.Got == 0 {
		return fmt.Sprintf("no answers supplied for %s", e.Selected)
	}
	return fmt.Sprintf("answers for %s do not match selected service %s", e.Got, e.Selected)
}

// InvalidAnswerError reports a supplementary answer outside its allowed values.
type InvalidAnswerError struct {
	Field string
	Value string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}
