package consultation

import (
	"fmt"
	"io"

	"github.com/pharmconsult/pharmconsult/internal/domain/eligibility"
)

// Presenter renders consultation results. Decision code never calls it
// directly; PresentScreening and PresentConsultation translate results into
// presenter calls.
type Presenter interface {
	Success(msg string)
	Warning(msg string)
	Text(msg string)
	Choices(prompt string, options []string)
}

// SelectServicePrompt heads the single-choice list of available services.
const SelectServicePrompt = "Select available service to proceed:"

// PresentScreening shows each eligibility flag and the service choice.
func PresentScreening(p Presenter, s Screening) {
	p.Text(fmt.Sprintf("Age: %d", s.Age))

	switch s.Eligibility.UTIStatus {
	case eligibility.UTIEligible:
		p.Success("Eligible for UTI screening")
	case eligibility.UTIConservative:
		p.Warning("Single UTI symptom: conservative management only, no antibiotics")
	default:
		p.Warning("Not eligible for UTI screening")
	}

	if s.Eligibility.OCResupply {
		p.Success("Eligible for OC resupply")
	} else {
		p.Warning("Not eligible for OC resupply")
	}

	if s.Eligibility.Dermatology {
		p.Success(fmt.Sprintf("Eligible for Dermatology triage (%s)", s.Eligibility.Condition))
	}

	if len(s.AvailableServices) == 0 {
		msg := "Patient is not eligible for any pharmacist service. Refer to GP."
		if s.ReferralURL != "" {
			msg += " " + s.ReferralURL
		}
		p.Warning(msg)
		return
	}
	p.Choices(SelectServicePrompt, s.AvailableServices)
}

// PresentConsultation shows the triage banner, advice and summary.
func PresentConsultation(p Presenter, c *Consultation) {
	banner := fmt.Sprintf("%s: %s", c.Selection.Label(), c.Outcome.Recommendation)
	if c.Outcome.Proceed() {
		p.Success(banner)
	} else {
		p.Warning(banner)
	}
	for _, a := range c.Outcome.Advice {
		p.Text("- " + a)
	}
	p.Text(c.Summary.Text)
}

// Level classifies a collected message.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelText    Level = "text"
	LevelChoice  Level = "choice"
)

// Message is one presenter call captured by MessageLog.
type Message struct {
	Level   Level    `json:"level"`
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
}

// MessageLog collects presenter calls so they can be returned in a JSON body.
type MessageLog struct {
	Messages []Message `json:"messages"`
}

func NewMessageLog() *MessageLog {
	return &MessageLog{Messages: []Message{}}
}

func (l *MessageLog) Success(msg string) { l.add(LevelSuccess, msg, nil) }
func (l *MessageLog) Warning(msg string) { l.add(LevelWarning, msg, nil) }
func (l *MessageLog) Text(msg string)    { l.add(LevelText, msg, nil) }

func (l *MessageLog) Choices(prompt string, options []string) {
	l.add(LevelChoice, prompt, append([]string(nil), options...))
}

func (l *MessageLog) add(level Level, text string, options []string) {
	l.Messages = append(l.Messages, Message{Level: level, Text: text, Options: options})
}

// TextPresenter writes plain terminal output. Write errors are kept and
// reported by Err.
type TextPresenter struct {
	w   io.Writer
	err error
}

func NewTextPresenter(w io.Writer) *TextPresenter {
	return &TextPresenter{w: w}
}

func (t *TextPresenter) Success(msg string) { t.printf("[OK] %s\n", msg) }
func (t *TextPresenter) Warning(msg string) { t.printf("[!!] %s\n", msg) }
func (t *TextPresenter) Text(msg string)    { t.printf("%s\n", msg) }

func (t *TextPresenter) Choices(prompt string, options []string) {
	t.printf("%s\n", prompt)
	for i, o := range options {
		t.printf("  %d) %s\n", i+1, o)
	}
}

func (t *TextPresenter) Err() error {
	return t.err
}

func (t *TextPresenter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}
