package intake

// ComputeAge returns the number of whole years between dob and ref. The year
// difference is reduced by one when ref falls before the birthday in ref's year.
func ComputeAge(dob, ref Date) (int, error) {
	if dob.After(ref) {
		return 0, &InvalidDateError{DateOfBirth: dob, Reference: ref}
	}
	years := ref.Year - dob.Year
	if ref.Month < dob.Month || (ref.Month == dob.Month && ref.Day < dob.Day) {
		years--
	}
	return years, nil
}
