package triage

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Antibiotic is one of the fixed UTI treatment options.
type Antibiotic string

const (
	Trimethoprim   Antibiotic = "Trimethoprim 300mg (1 at night for 3 nights)"
	Nitrofurantoin Antibiotic = "Nitrofurantoin 100mg (QID for 5 days)"
	Cefalexin      Antibiotic = "Cefalexin 500mg (BD for 5 days)"
)

// Antibiotics lists the UTI options in the order they are offered.
func Antibiotics() []Antibiotic {
	return []Antibiotic{Trimethoprim, Nitrofurantoin, Cefalexin}
}

// DermatitisSeverity is the affected-area grading for dermatitis.
type DermatitisSeverity string

const (
	SeverityLocalised  DermatitisSeverity = "Localised"
	SeverityWidespread DermatitisSeverity = "Widespread"
)

func DermatitisSeverities() []DermatitisSeverity {
	return []DermatitisSeverity{SeverityLocalised, SeverityWidespread}
}

// Answers holds the supplementary answers for exactly one service kind.
type Answers interface {
	Kind() Kind
}

type UTIAnswers struct {
	Antibiotic Antibiotic
}

type OCResupplyAnswers struct{}

type ImpetigoAnswers struct {
	SpreadingOrSystemic bool
}

type DermatitisAnswers struct {
	SecondaryInfection bool
	Severity           DermatitisSeverity
}

type PsoriasisAnswers struct {
	BSAPercent             int
	JointOrNailInvolvement bool
}

type ZosterAnswers struct {
	OnsetWithin72Hours bool
	Immunocompromised  bool
}

func (UTIAnswers) Kind() Kind        { return KindUTI }
func (OCResupplyAnswers) Kind() Kind { return KindOCResupply }
func (ImpetigoAnswers) Kind() Kind   { return KindImpetigo }
func (DermatitisAnswers) Kind() Kind { return KindDermatitis }
func (PsoriasisAnswers) Kind() Kind  { return KindPlaquePsoriasis }
func (ZosterAnswers) Kind() Kind     { return KindHerpesZoster }

// SupplementaryAnswers is the flat form collected after a service is chosen.
// For narrows it to the typed answers of a single kind.
type SupplementaryAnswers struct {
	Antibiotic             string `json:"antibiotic,omitempty" yaml:"antibiotic"`
	SpreadingOrSystemic    bool   `json:"spreading_or_systemic,omitempty" yaml:"spreading_or_systemic"`
	SecondaryInfection     bool   `json:"secondary_infection,omitempty" yaml:"secondary_infection"`
	Severity               string `json:"severity,omitempty" yaml:"severity"`
	BSAPercent             int    `json:"bsa_percent,omitempty" yaml:"bsa_percent"`
	JointOrNailInvolvement bool   `json:"joint_or_nail_involvement,omitempty" yaml:"joint_or_nail_involvement"`
	OnsetWithin72Hours     bool   `json:"onset_within_72_hours,omitempty" yaml:"onset_within_72_hours"`
}

// For returns the answers relevant to k. The zoster immunocompromised flag
// is taken from the intake, not from this form.
func (s SupplementaryAnswers) For(k Kind, immunocompromised bool) (Answers, error) {
	switch k {
	case KindUTI:
		if strings.TrimSpace(s.Antibiotic) == "" {
			return nil, &InvalidAnswerError{Field: "antibiotic", Value: s.Antibiotic}
		}
		ab := Antibiotic(s.Antibiotic)
		if !lo.Contains(Antibiotics(), ab) {
			return nil, &InvalidAnswerError{Field: "antibiotic", Value: s.Antibiotic}
		}
		return UTIAnswers{Antibiotic: ab}, nil
	case KindOCResupply:
		return OCResupplyAnswers{}, nil
	case KindImpetigo:
		return ImpetigoAnswers{SpreadingOrSystemic: s.SpreadingOrSystemic}, nil
	case KindDermatitis:
		sev := DermatitisSeverity(s.Severity)
		if sev == "" {
			sev = SeverityLocalised
		}
		if !lo.Contains(DermatitisSeverities(), sev) {
			return nil, &InvalidAnswerError{Field: "severity", Value: s.Severity}
		}
		return DermatitisAnswers{SecondaryInfection: s.SecondaryInfection, Severity: sev}, nil
	case KindPlaquePsoriasis:
		if s.BSAPercent < 0 || s.BSAPercent > 100 {
			return nil, &InvalidAnswerError{Field: "bsa_percent", Value: fmt.Sprint(s.BSAPercent)}
		}
		return PsoriasisAnswers{BSAPercent: s.BSAPercent, JointOrNailInvolvement: s.JointOrNailInvolvement}, nil
	case KindHerpesZoster:
		return ZosterAnswers{OnsetWithin72Hours: s.OnsetWithin72Hours, Immunocompromised: immunocompromised}, nil
	}
	return nil, fmt.Errorf("no answers defined for %s", k)
}
