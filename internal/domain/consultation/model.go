// Package consultation runs one consultation end to end: screening, service
// selection, triage and the exported summary. It is driven by the HTTP
// handler and by the evaluate command through AnswerSource and Presenter.
package consultation

import (
	"github.com/google/uuid"

	"github.com/pharmconsult/pharmconsult/internal/domain/eligibility"
	"github.com/pharmconsult/pharmconsult/internal/domain/intake"
	"github.com/pharmconsult/pharmconsult/internal/domain/summary"
	"github.com/pharmconsult/pharmconsult/internal/domain/triage"
)

// Request is everything collected for one consultation.
type Request struct {
	Intake     intake.PatientIntake        `json:"intake" yaml:"intake"`
	Pharmacist intake.PharmacistContext    `json:"pharmacist" yaml:"pharmacist"`
	Service    string                      `json:"service" yaml:"service"`
	Answers    triage.SupplementaryAnswers `json:"answers" yaml:"answers"`
	Notes      string                      `json:"notes,omitempty" yaml:"notes"`
}

// Screening is the eligibility step: what the patient may proceed with.
type Screening struct {
	Age               int                `json:"age"`
	Eligibility       eligibility.Result `json:"eligibility"`
	AvailableServices []string           `json:"available_services"`
	ReferralURL       string             `json:"referral_url"`
}

// Consultation is one completed evaluation pass. It is returned to the
// caller and never stored.
type Consultation struct {
	ID uuid.UUID `json:"id"`
	Screening
	Selection triage.Selection            `json:"selection"`
	Outcome   triage.Outcome              `json:"outcome"`
	Summary   summary.ConsultationSummary `json:"summary"`
}

// Config carries the rule policies and export settings.
type Config struct {
	Eligibility     eligibility.Policy
	Triage          triage.Policy
	ReferralURL     string
	SummaryFileName string
}

func DefaultConfig() Config {
	return Config{
		Eligibility:     eligibility.DefaultPolicy(),
		Triage:          triage.DefaultPolicy(),
		SummaryFileName: summary.DefaultFileName,
	}
}
