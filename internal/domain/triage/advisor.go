package triage

import (
	"fmt"
)

// Disposition is the triage decision: treat in the pharmacy or refer to a GP.
type Disposition string

const (
	Proceed Disposition = "PROCEED"
	Refer   Disposition = "REFER"
)

// Outcome is the result of one decision table.
type Outcome struct {
	Kind           Kind        `json:"service"`
	Disposition    Disposition `json:"disposition"`
	Recommendation string      `json:"recommendation"`
	Advice         []string    `json:"advice,omitempty"`
}

func (o Outcome) Proceed() bool {
	return o.Disposition == Proceed
}

// Policy holds the thresholds that differed between revisions of the
// decision tables.
type Policy struct {
	// PsoriasisBSAThreshold is the body-surface-area percentage above which
	// plaque psoriasis is referred.
	PsoriasisBSAThreshold int
	// PsoriasisThresholdInclusive refers at exactly the threshold (>=)
	// instead of strictly above it (>).
	PsoriasisThresholdInclusive bool
}

func DefaultPolicy() Policy {
	return Policy{PsoriasisBSAThreshold: 10}
}

// Advise evaluates sel with the default policy.
func Advise(sel Selection, answers Answers) (Outcome, error) {
	return DefaultPolicy().Advise(sel, answers)
}

// Advise runs the decision table for the selected service. The answers must
// belong to the same kind as the selection.
func (p Policy) Advise(sel Selection, answers Answers) (Outcome, error) {
	if answers == nil {
		return Outcome{}, &AnswersMismatchError{Selected: sel.Kind}
	}
	if answers.Kind() != sel.Kind {
		return Outcome{}, &AnswersMismatchError{Selected: sel.Kind, Got: answers.Kind()}
	}

	var out Outcome
	switch a := answers.(type) {
	case UTIAnswers:
		out = adviseUTI(a)
	case OCResupplyAnswers:
		out = adviseOCResupply()
	case ImpetigoAnswers:
		out = adviseImpetigo(a)
	case DermatitisAnswers:
		out = adviseDermatitis(a)
	case PsoriasisAnswers:
		out = p.advisePsoriasis(a)
	case ZosterAnswers:
		out = adviseZoster(a)
	default:
		return Outcome{}, fmt.Errorf("no decision table for %T", answers)
	}
	out.Kind = sel.Kind
	return out, nil
}

func adviseUTI(a UTIAnswers) Outcome {
	return Outcome{
		Disposition:    Proceed,
		Recommendation: "Treat with: " + string(a.Antibiotic),
		Advice: []string{
			"Start antibiotics now",
			"Keep a urine sample refrigerated before first dose",
			"Follow up with GP if not improved in 48 hrs",
		},
	}
}

func adviseOCResupply() Outcome {
	return Outcome{
		Disposition:    Proceed,
		Recommendation: "Patient eligible for resupply of up to 12 months.",
		Advice: []string{
			"Document BP, BMI and counselling provided",
			"Record the supply in dispensing software",
			"Upload to My Health Record if applicable",
		},
	}
}

func adviseImpetigo(a ImpetigoAnswers) Outcome {
	if a.SpreadingOrSystemic {
		return Outcome{
			Disposition:    Refer,
			Recommendation: "Refer to GP: impetigo is widespread or showing systemic signs.",
		}
	}
	return Outcome{
		Disposition:    Proceed,
		Recommendation: "Treat with topical mupirocin.",
		Advice: []string{
			"Keep lesions covered and avoid sharing towels",
			"Refer if lesions spread or systemic symptoms develop",
		},
	}
}

func adviseDermatitis(a DermatitisAnswers) Outcome {
	if a.SecondaryInfection {
		return Outcome{
			Disposition:    Refer,
			Recommendation: "Refer to GP: signs of secondary infection.",
		}
	}
	if a.Severity == SeverityWidespread {
		return Outcome{
			Disposition:    Refer,
			Recommendation: "Refer to GP: dermatitis is widespread.",
		}
	}
	return Outcome{
		Disposition:    Proceed,
		Recommendation: "Recommend emollients + mild topical corticosteroid.",
		Advice: []string{
			"Apply emollient liberally and often",
			"Refer if uncontrolled after 2 weeks",
		},
	}
}

func (p Policy) advisePsoriasis(a PsoriasisAnswers) Outcome {
	over := a.BSAPercent > p.PsoriasisBSAThreshold
	if p.PsoriasisThresholdInclusive {
		over = a.BSAPercent >= p.PsoriasisBSAThreshold
	}
	if over {
		return Outcome{
			Disposition:    Refer,
			Recommendation: fmt.Sprintf("Refer to GP/dermatologist: %d%% body surface area affected.", a.BSAPercent),
		}
	}
	if a.JointOrNailInvolvement {
		return Outcome{
			Disposition:    Refer,
			Recommendation: "Refer to GP/dermatologist: joint or nail involvement.",
		}
	}
	return Outcome{
		Disposition:    Proceed,
		Recommendation: "Treat with topical corticosteroid + moisturiser.",
		Advice: []string{
			"Review in 4 weeks",
			"Refer if plaques extend or joints become painful",
		},
	}
}

func adviseZoster(a ZosterAnswers) Outcome {
	if !a.OnsetWithin72Hours {
		return Outcome{
			Disposition:    Refer,
			Recommendation: "Refer to GP for symptom control (too late for antivirals).",
		}
	}
	if a.Immunocompromised {
		return Outcome{
			Disposition:    Refer,
			Recommendation: "Refer to GP: patient is immunocompromised.",
		}
	}
	return Outcome{
		Disposition:    Proceed,
		Recommendation: "Start antivirals.",
		Advice: []string{
			"Educate about pain management",
			"Educate about post-herpetic neuralgia",
		},
	}
}
