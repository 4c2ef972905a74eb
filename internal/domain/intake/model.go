package intake

import (
	"strings"

	"github.com/samber/lo"
)

// Sex is the sex recorded at birth.
type Sex string

const (
	SexFemale Sex = "Female"
	SexMale   Sex = "Male"
	SexOther  Sex = "Other"
)

func (s Sex) Valid() bool {
	return s == SexFemale || s == SexMale || s == SexOther
}

// Symptom is one of the UTI screening symptoms.
type Symptom string

const (
	SymptomDysuria        Symptom = "Dysuria"
	SymptomUrgency        Symptom = "Urgency"
	SymptomFrequency      Symptom = "Frequency"
	SymptomSuprapubicPain Symptom = "Suprapubic Pain"
)

// UTISymptoms lists the screening symptoms in form order.
func UTISymptoms() []Symptom {
	return []Symptom{SymptomDysuria, SymptomUrgency, SymptomFrequency, SymptomSuprapubicPain}
}

func (s Symptom) Valid() bool {
	return lo.Contains(UTISymptoms(), s)
}

// SkinCondition is the suspected dermatological presentation.
type SkinCondition string

const (
	SkinNone            SkinCondition = "None"
	SkinImpetigo        SkinCondition = "Impetigo"
	SkinDermatitis      SkinCondition = "Dermatitis"
	SkinPlaquePsoriasis SkinCondition = "Plaque Psoriasis"
	SkinHerpesZoster    SkinCondition = "Herpes Zoster"
)

// SkinConditions lists the conditions in form order, excluding None.
func SkinConditions() []SkinCondition {
	return []SkinCondition{SkinImpetigo, SkinDermatitis, SkinPlaquePsoriasis, SkinHerpesZoster}
}

func (c SkinCondition) Valid() bool {
	return c == SkinNone || lo.Contains(SkinConditions(), c)
}

// PatientIntake is the submitted intake form. It is built once per
// consultation and passed by value; nothing downstream mutates it.
type PatientIntake struct {
	FirstName   string `json:"first_name" yaml:"first_name"`
	LastName    string `json:"last_name" yaml:"last_name"`
	DateOfBirth Date   `json:"date_of_birth" yaml:"date_of_birth"`
	Sex         Sex    `json:"sex" yaml:"sex"`
	Email       string `json:"email,omitempty" yaml:"email"`
	Phone       string `json:"phone,omitempty" yaml:"phone"`
	Address     string `json:"address,omitempty" yaml:"address"`
	Medicare    string `json:"medicare,omitempty" yaml:"medicare"`
	DVA         string `json:"dva,omitempty" yaml:"dva"`
	Consent     bool   `json:"consent" yaml:"consent"`

	Pregnant          bool          `json:"pregnant" yaml:"pregnant"`
	SmokerOver35      bool          `json:"smoker_over_35" yaml:"smoker_over_35"`
	OnOC              bool          `json:"on_oc" yaml:"on_oc"`
	BPSafe            bool          `json:"bp_safe" yaml:"bp_safe"`
	GPReviewed        bool          `json:"gp_reviewed" yaml:"gp_reviewed"`
	MigraineAura      bool          `json:"migraine_aura" yaml:"migraine_aura"`
	VTEHistory        bool          `json:"vte_history" yaml:"vte_history"`
	CancerHistory     bool          `json:"cancer_history" yaml:"cancer_history"`
	Immunocompromised bool          `json:"immunocompromised" yaml:"immunocompromised"`
	TravelRecent      bool          `json:"travel_recent" yaml:"travel_recent"`
	UTISymptoms       []Symptom     `json:"uti_symptoms,omitempty" yaml:"uti_symptoms"`
	SkinCondition     SkinCondition `json:"skin_condition,omitempty" yaml:"skin_condition"`
}

// FullName joins first and last name with a single space.
func (p PatientIntake) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// SymptomCount counts distinct symptoms. Duplicates in the submitted list are
// counted once.
func (p PatientIntake) SymptomCount() int {
	return len(lo.Uniq(p.UTISymptoms))
}

// Condition returns the skin condition, treating an empty value as None.
func (p PatientIntake) Condition() SkinCondition {
	if p.SkinCondition == "" {
		return SkinNone
	}
	return p.SkinCondition
}

// Validate checks required identity fields and categorical values.
func (p PatientIntake) Validate() error {
	var missing []string
	if strings.TrimSpace(p.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(p.LastName) == "" {
		missing = append(missing, "last_name")
	}
	if p.DateOfBirth.IsZero() {
		missing = append(missing, "date_of_birth")
	}
	if p.Sex == "" {
		missing = append(missing, "sex")
	}
	if len(missing) > 0 {
		return &MissingRequiredFieldError{Fields: missing}
	}

	if !p.Sex.Valid() {
		return &InvalidFieldError{Field: "sex", Value: string(p.Sex)}
	}
	if bad, ok := lo.Find(p.UTISymptoms, func(s Symptom) bool { return !s.Valid() }); ok {
		return &InvalidFieldError{Field: "uti_symptoms", Value: string(bad)}
	}
	if !p.Condition().Valid() {
		return &InvalidFieldError{Field: "skin_condition", Value: string(p.SkinCondition)}
	}
	return nil
}

// PharmacistContext identifies who ran the consultation and when.
type PharmacistContext struct {
	ConsultationDate Date   `json:"consultation_date" yaml:"consultation_date"`
	FullName         string `json:"full_name" yaml:"full_name"`
	AHPRA            string `json:"ahpra" yaml:"ahpra"`
}

func (c PharmacistContext) Validate() error {
	var missing []string
	if c.ConsultationDate.IsZero() {
		missing = append(missing, "consultation_date")
	}
	if strings.TrimSpace(c.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(c.AHPRA) == "" {
		missing = append(missing, "ahpra")
	}
	if len(missing) > 0 {
		return &MissingRequiredFieldError{Fields: missing}
	}
	return nil
}
