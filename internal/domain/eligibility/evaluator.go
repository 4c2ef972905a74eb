// Package eligibility decides which pharmacist services a patient qualifies
// for and validates the pharmacist's choice among them.
package eligibility

import (
	"github.com/pharmconsult/pharmconsult/internal/domain/intake"
)

// UTIStatus distinguishes a single-symptom presentation, which gets
// conservative management without antibiotics, from flat ineligibility.
type UTIStatus string

const (
	UTIIneligible   UTIStatus = "ineligible"
	UTIConservative UTIStatus = "conservative"
	UTIEligible     UTIStatus = "eligible"
)

// Policy holds the eligibility thresholds. Ages are inclusive bounds.
type Policy struct {
	UTIMinAge      int
	UTIMaxAge      int
	UTIMinSymptoms int
	// SingleSymptomConservative reports exactly one symptom as
	// UTIConservative instead of UTIIneligible.
	SingleSymptomConservative bool
	OCMinAge                  int
}

func DefaultPolicy() Policy {
	return Policy{
		UTIMinAge:                 18,
		UTIMaxAge:                 65,
		UTIMinSymptoms:            2,
		SingleSymptomConservative: true,
		OCMinAge:                  16,
	}
}

// Result holds three independent eligibility flags.
type Result struct {
	UTI         bool                 `json:"uti"`
	UTIStatus   UTIStatus            `json:"uti_status"`
	OCResupply  bool                 `json:"oc_resupply"`
	Dermatology bool                 `json:"dermatology"`
	Condition   intake.SkinCondition `json:"skin_condition"`
}

// Evaluate applies the default policy.
func Evaluate(in intake.PatientIntake, age int) Result {
	return DefaultPolicy().Evaluate(in, age)
}

// Evaluate is pure: the same intake and age always give the same result.
func (p Policy) Evaluate(in intake.PatientIntake, age int) Result {
	status := p.utiStatus(in, age)
	cond := in.Condition()
	return Result{
		UTI:         status == UTIEligible,
		UTIStatus:   status,
		OCResupply:  p.ocResupply(in, age),
		Dermatology: cond != intake.SkinNone,
		Condition:   cond,
	}
}

func (p Policy) utiStatus(in intake.PatientIntake, age int) UTIStatus {
	if in.Sex != intake.SexFemale || age < p.UTIMinAge || age > p.UTIMaxAge {
		return UTIIneligible
	}
	if in.Pregnant || in.Immunocompromised {
		return UTIIneligible
	}
	n := in.SymptomCount()
	switch {
	case n >= p.UTIMinSymptoms:
		return UTIEligible
	case n == 1 && p.SingleSymptomConservative:
		return UTIConservative
	}
	return UTIIneligible
}

func (p Policy) ocResupply(in intake.PatientIntake, age int) bool {
	return in.Sex == intake.SexFemale &&
		age >= p.OCMinAge &&
		in.OnOC &&
		in.GPReviewed &&
		in.BPSafe &&
		!in.SmokerOver35 &&
		!in.MigraineAura &&
		!in.VTEHistory &&
		!in.CancerHistory
}
