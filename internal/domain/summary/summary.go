// Package summary renders the consultation summary exported at the end of a
// consultation.
package summary

import (
	"fmt"
	"strings"

	"github.com/pharmconsult/pharmconsult/internal/domain/intake"
	"github.com/pharmconsult/pharmconsult/internal/domain/triage"
)

// DefaultFileName is the download name for the exported summary.
const DefaultFileName = "consultation_summary.txt"

// ConsultationSummary is the final text record of one consultation.
type ConsultationSummary struct {
	FileName string `json:"file_name"`
	Text     string `json:"text"`
}

// Bytes returns the exact export content.
func (s ConsultationSummary) Bytes() []byte {
	return []byte(s.Text)
}

// Options carries the parts of the summary that do not come from the
// consultation itself.
type Options struct {
	FileName    string
	ReferralURL string
	Notes       string
}

// Compose builds the summary. Output depends only on its arguments, so equal
// inputs always produce byte-identical text.
func Compose(in intake.PatientIntake, pc intake.PharmacistContext, sel triage.Selection, out triage.Outcome, opts Options) ConsultationSummary {
	var b strings.Builder

	b.WriteString("Pharmacist Consultation Summary\n")
	fmt.Fprintf(&b, "Patient: %s\n", in.FullName())
	fmt.Fprintf(&b, "DOB: %s\n", in.DateOfBirth)
	fmt.Fprintf(&b, "Sex at birth: %s\n", in.Sex)
	if in.Medicare != "" {
		fmt.Fprintf(&b, "Medicare: %s\n", in.Medicare)
	}
	if in.DVA != "" {
		fmt.Fprintf(&b, "DVA: %s\n", in.DVA)
	}
	fmt.Fprintf(&b, "Consent provided: %s\n", yesNo(in.Consent))
	fmt.Fprintf(&b, "Pharmacist: %s (AHPRA: %s)\n", pc.FullName, pc.AHPRA)
	fmt.Fprintf(&b, "Consultation date: %s\n", pc.ConsultationDate)

	b.WriteString("\n")
	fmt.Fprintf(&b, "Service: %s\n", sel.Label())
	fmt.Fprintf(&b, "Disposition: %s\n", out.Disposition)
	fmt.Fprintf(&b, "Recommendation: %s\n", out.Recommendation)
	if len(out.Advice) > 0 {
		b.WriteString("Advice:\n")
		for _, a := range out.Advice {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}

	if notes := strings.TrimSpace(opts.Notes); notes != "" {
		b.WriteString("\nNotes:\n")
		b.WriteString(notes)
		b.WriteString("\n")
	}
	if opts.ReferralURL != "" {
		fmt.Fprintf(&b, "\nReferral: %s\n", opts.ReferralURL)
	}

	name := opts.FileName
	if name == "" {
		name = DefaultFileName
	}
	return ConsultationSummary{FileName: name, Text: b.String()}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
