package triage

import (
	"fmt"

	"github.com/pharmconsult/pharmconsult/internal/domain/intake"
)

// Kind identifies a service module. Each kind has its own decision table and
// its own set of supplementary answers.
type Kind int

const (
	KindUTI Kind = iota + 1
	KindOCResupply
	KindImpetigo
	KindDermatitis
	KindPlaquePsoriasis
	KindHerpesZoster
)

var kindLabels = map[Kind]string{
	KindUTI:             "UTI",
	KindOCResupply:      "OC Resupply",
	KindImpetigo:        string(intake.SkinImpetigo),
	KindDermatitis:      string(intake.SkinDermatitis),
	KindPlaquePsoriasis: string(intake.SkinPlaquePsoriasis),
	KindHerpesZoster:    string(intake.SkinHerpesZoster),
}

// Kinds returns every service kind in presentation order.
func Kinds() []Kind {
	return []Kind{KindUTI, KindOCResupply, KindImpetigo, KindDermatitis, KindPlaquePsoriasis, KindHerpesZoster}
}

// String returns the service label shown to the pharmacist.
func (k Kind) String() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsDermatology reports whether k is one of the skin-condition modules.
func (k Kind) IsDermatology() bool {
	switch k {
	case KindImpetigo, KindDermatitis, KindPlaquePsoriasis, KindHerpesZoster:
		return true
	}
	return false
}

// ParseKind maps a service label back to its kind.
func ParseKind(label string) (Kind, bool) {
	for k, l := range kindLabels {
		if l == label {
			return k, true
		}
	}
	return 0, false
}

// KindForCondition returns the dermatology module for c. SkinNone has none.
func KindForCondition(c intake.SkinCondition) (Kind, bool) {
	switch c {
	case intake.SkinImpetigo:
		return KindImpetigo, true
	case intake.SkinDermatitis:
		return KindDermatitis, true
	case intake.SkinPlaquePsoriasis:
		return KindPlaquePsoriasis, true
	case intake.SkinHerpesZoster:
		return KindHerpesZoster, true
	}
	return 0, false
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindLabels[k]; !ok {
		return nil, fmt.Errorf("unknown service kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("unknown service %q", string(b))
	}
	*k = parsed
	return nil
}

// Selection is the pharmacist's single choice among the available services.
type Selection struct {
	Kind Kind `json:"service"`
}

func (s Selection) Label() string {
	return s.Kind.String()
}
