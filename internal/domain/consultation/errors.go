package consultation

import (
	"errors"

	"github.com/pharmconsult/pharmconsult/internal/domain/eligibility"
	"github.com/pharmconsult/pharmconsult/internal/domain/intake"
	"github.com/pharmconsult/pharmconsult/internal/domain/triage"
)

// IsValidation reports whether err is a local validation failure of the
// submitted answers, as opposed to an infrastructure error.
func IsValidation(err error) bool {
	var (
		missing  *intake.MissingRequiredFieldError
		invalid  *intake.InvalidFieldError
		date     *intake.InvalidDateError
		selected *eligibility.IneligibleSelectionError
		mismatch *triage.AnswersMismatchError
		answer   *triage.InvalidAnswerError
	)
	return errors.As(err, &missing) ||
		errors.As(err, &invalid) ||
		errors.As(err, &date) ||
		errors.As(err, &selected) ||
		errors.As(err, &mismatch) ||
		errors.As(err, &answer)
}

// mergeMissing folds several validation errors into one
// MissingRequiredFieldError so callers see every missing field at once.
// Errors of any other type are returned first, unchanged.
func mergeMissing(errs ...error) error {
	var fields []string
	for _, err := range errs {
		if err == nil {
			continue
		}
		var m *intake.MissingRequiredFieldError
		if !errors.As(err, &m) {
			return err
		}
		fields = append(fields, m.Fields...)
	}
	if len(fields) == 0 {
		return nil
	}
	return &intake.MissingRequiredFieldError{Fields: fields}
}
