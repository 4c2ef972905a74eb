package intake

import (
	"fmt"
	"strings"
)

// InvalidDateError reports a date of birth that falls after the consultation date.
type InvalidDateError struct {
	DateOfBirth Date
	Reference   Date
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("date_of_birth %s is after consultation date %s", e.DateOfBirth, e.Reference)
}

// MissingRequiredFieldError lists every required field left empty at submission.
type MissingRequiredFieldError struct {
	Fields []string
}

func (e *MissingRequiredFieldError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%s is required", e.Fields[0])
	}
	return fmt.Sprintf("required fields missing: %s", strings.Join(e.Fields, ", "))
}

// InvalidFieldError reports a categorical field holding a value outside its set.
type InvalidFieldError struct {
	Field string
	Value string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}
