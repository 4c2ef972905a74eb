package consultation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pharmconsult/pharmconsult/internal/domain/audit"
	"github.com/pharmconsult/pharmconsult/internal/domain/eligibility"
	"github.com/pharmconsult/pharmconsult/internal/domain/intake"
	"github.com/pharmconsult/pharmconsult/internal/domain/summary"
	"github.com/pharmconsult/pharmconsult/internal/platform/middleware"
)

// Auditor records a de-identified row per completed consultation.
type Auditor interface {
	Record(ctx context.Context, e *audit.Entry) error
}

// Observer receives outcome counts. Labels never carry patient data.
type Observer interface {
	RecordEligibility(flag, status string)
	RecordConsultation(service, disposition string)
	RecordAuditFailure()
}

type Service struct {
	cfg      Config
	auditor  Auditor
	observer Observer
	logger   zerolog.Logger
	today    func() intake.Date
}

// NewService builds the orchestrator. auditor and observer may be nil.
func NewService(cfg Config, auditor Auditor, observer Observer, logger zerolog.Logger) *Service {
	if cfg.SummaryFileName == "" {
		cfg.SummaryFileName = summary.DefaultFileName
	}
	return &Service{
		cfg:      cfg,
		auditor:  auditor,
		observer: observer,
		logger:   logger,
		today:    func() intake.Date { return intake.DateOf(time.Now()) },
	}
}

// Screen validates the intake and evaluates eligibility as of the given
// date, or today when on is zero.
func (s *Service) Screen(ctx context.Context, in intake.PatientIntake, on intake.Date) (Screening, error) {
	if err := in.Validate(); err != nil {
		return Screening{}, err
	}
	return s.screen(ctx, in, on, true)
}

func (s *Service) screen(_ context.Context, in intake.PatientIntake, on intake.Date, record bool) (Screening, error) {
	if on.IsZero() {
		on = s.today()
	}
	age, err := intake.ComputeAge(in.DateOfBirth, on)
	if err != nil {
		return Screening{}, err
	}

	res := s.cfg.Eligibility.Evaluate(in, age)
	if record && s.observer != nil {
		s.observer.RecordEligibility("uti", string(res.UTIStatus))
		s.observer.RecordEligibility("oc_resupply", flagStatus(res.OCResupply))
		s.observer.RecordEligibility("dermatology", flagStatus(res.Dermatology))
	}

	return Screening{
		Age:               age,
		Eligibility:       res,
		AvailableServices: eligibility.AvailableServices(res),
		ReferralURL:       s.cfg.ReferralURL,
	}, nil
}

// Consult runs the full pipeline for req. Any failure leaves no partial
// result: either every step succeeds or no summary is produced.
func (s *Service) Consult(ctx context.Context, req Request) (*Consultation, error) {
	return s.consult(ctx, req, true)
}

// Preview runs the same pipeline as Consult but records nothing: no audit
// row, no metrics and no completion log. It re-renders a consultation that
// was already recorded.
func (s *Service) Preview(ctx context.Context, req Request) (*Consultation, error) {
	return s.consult(ctx, req, false)
}

func (s *Service) consult(ctx context.Context, req Request, record bool) (*Consultation, error) {
	scr, err := s.screenRequest(ctx, req, record)
	if err != nil {
		return nil, err
	}
	return s.complete(ctx, req, scr, record)
}

// Run collects answers from src, presents the screening, then completes and
// presents the consultation.
func (s *Service) Run(ctx context.Context, src AnswerSource, p Presenter) (*Consultation, error) {
	req, err := src.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect answers: %w", err)
	}

	scr, err := s.screenRequest(ctx, req, true)
	if err != nil {
		return nil, err
	}
	PresentScreening(p, scr)

	c, err := s.complete(ctx, req, scr, true)
	if err != nil {
		return nil, err
	}
	PresentConsultation(p, c)
	return c, nil
}

func (s *Service) screenRequest(ctx context.Context, req Request, record bool) (Screening, error) {
	if err := mergeMissing(req.Intake.Validate(), req.Pharmacist.Validate()); err != nil {
		return Screening{}, err
	}
	return s.screen(ctx, req.Intake, req.Pharmacist.ConsultationDate, record)
}

func (s *Service) complete(ctx context.Context, req Request, scr Screening, record bool) (*Consultation, error) {
	if req.Service == "" {
		return nil, &intake.MissingRequiredFieldError{Fields: []string{"service"}}
	}
	sel, err := eligibility.SelectService(req.Service, scr.AvailableServices)
	if err != nil {
		return nil, err
	}

	answers, err := req.Answers.For(sel.Kind, req.Intake.Immunocompromised)
	if err != nil {
		return nil, err
	}
	out, err := s.cfg.Triage.Advise(sel, answers)
	if err != nil {
		return nil, err
	}

	c := &Consultation{
		ID:        uuid.New(),
		Screening: scr,
		Selection: sel,
		Outcome:   out,
		Summary: summary.Compose(req.Intake, req.Pharmacist, sel, out, summary.Options{
			FileName:    s.cfg.SummaryFileName,
			ReferralURL: s.cfg.ReferralURL,
			Notes:       req.Notes,
		}),
	}

	if !record {
		return c, nil
	}
	// A request abandoned at its deadline is not recorded.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rid := middleware.RequestIDFromContext(ctx)
	s.audit(ctx, rid, c)
	if s.observer != nil {
		s.observer.RecordConsultation(sel.Label(), string(out.Disposition))
	}

	s.logger.Info().
		Str("request_id", rid).
		Str("consultation_id", c.ID.String()).
		Str("service", sel.Label()).
		Str("disposition", string(out.Disposition)).
		Str("uti_status", string(scr.Eligibility.UTIStatus)).
		Msg("consultation completed")

	return c, nil
}

// audit failures are logged and counted but never fail the consultation.
func (s *Service) audit(ctx context.Context, rid string, c *Consultation) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Record(ctx, &audit.Entry{
		ID:          c.ID,
		RequestID:   rid,
		Service:     c.Selection.Label(),
		Disposition: string(c.Outcome.Disposition),
		UTIStatus:   string(c.Eligibility.UTIStatus),
	})
	if err == nil {
		return
	}
	if s.observer != nil {
		s.observer.RecordAuditFailure()
	}
	s.logger.Error().Err(err).
		Str("request_id", rid).
		Str("consultation_id", c.ID.String()).
		Msg("failed to write audit entry")
}

func flagStatus(ok bool) string {
	if ok {
		return "eligible"
	}
	return "ineligible"
}
