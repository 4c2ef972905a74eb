package eligibility

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/pharmconsult/pharmconsult/internal/domain/triage"
)

// IneligibleSelectionError is returned when the chosen service is not among
// the services available for this patient.
type IneligibleSelectionError struct {
	Label     string
	Available []string
}

func (e *IneligibleSelectionError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("service %q is not available: patient is not eligible for any service", e.Label)
	}
	return fmt.Sprintf("service %q is not available for this patient", e.Label)
}

// AvailableServices lists the service labels the patient may proceed with,
// in the order UTI, OC Resupply, skin condition.
func AvailableServices(r Result) []string {
	out := []string{}
	if r.UTI {
		out = append(out, triage.KindUTI.String())
	}
	if r.OCResupply {
		out = append(out, triage.KindOCResupply.String())
	}
	if r.Dermatology {
		if k, ok := triage.KindForCondition(r.Condition); ok {
			out = append(out, k.String())
		}
	}
	return out
}

// SelectService accepts label only if it is one of available.
func SelectService(label string, available []string) (triage.Selection, error) {
	if !lo.Contains(available, label) {
		return triage.Selection{}, &IneligibleSelectionError{Label: label, Available: available}
	}
	k, ok := triage.ParseKind(label)
	if !ok {
		return triage.Selection{}, &IneligibleSelectionError{Label: label, Available: available}
	}
	return triage.Selection{Kind: k}, nil
}
