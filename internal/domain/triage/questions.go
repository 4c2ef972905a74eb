package triage

import "github.com/samber/lo"

// QuestionType tells the form which widget to render.
type QuestionType string

const (
	QuestionChoice  QuestionType = "choice"
	QuestionBoolean QuestionType = "boolean"
	QuestionPercent QuestionType = "percent"
)

// Question describes one supplementary answer a service needs. Field is the
// SupplementaryAnswers JSON key it fills.
type Question struct {
	Field   string       `json:"field"`
	Prompt  string       `json:"prompt"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options,omitempty"`
}

// ServiceInfo is one catalogue entry.
type ServiceInfo struct {
	Kind        Kind       `json:"service"`
	Dermatology bool       `json:"dermatology"`
	Questions   []Question `json:"questions"`
}

// Questions returns the supplementary questions asked for k.
func Questions(k Kind) []Question {
	switch k {
	case KindUTI:
		return []Question{{
			Field:   "antibiotic",
			Prompt:  "Recommended treatment",
			Type:    QuestionChoice,
			Options: lo.Map(Antibiotics(), func(a Antibiotic, _ int) string { return string(a) }),
		}}
	case KindImpetigo:
		return []Question{{Field: "spreading_or_systemic", Prompt: "Widespread or systemic signs?", Type: QuestionBoolean}}
	case KindDermatitis:
		return []Question{
			{Field: "secondary_infection", Prompt: "Signs of secondary infection?", Type: QuestionBoolean},
			{
				Field:   "severity",
				Prompt:  "Affected area",
				Type:    QuestionChoice,
				Options: lo.Map(DermatitisSeverities(), func(s DermatitisSeverity, _ int) string { return string(s) }),
			},
		}
	case KindPlaquePsoriasis:
		return []Question{
			{Field: "bsa_percent", Prompt: "Body surface area affected (%)", Type: QuestionPercent},
			{Field: "joint_or_nail_involvement", Prompt: "Joint pain or nail involvement?", Type: QuestionBoolean},
		}
	case KindHerpesZoster:
		return []Question{{Field: "onset_within_72_hours", Prompt: "Onset <72 hrs ago?", Type: QuestionBoolean}}
	}
	return []Question{}
}

// Catalogue lists every service with its questions.
func Catalogue() []ServiceInfo {
	return lo.Map(Kinds(), func(k Kind, _ int) ServiceInfo {
		return ServiceInfo{Kind: k, Dermatology: k.IsDermatology(), Questions: Questions(k)}
	})
}
