package consultation

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

const consultBody = `{
  "intake": {
    "first_name": "Jane",
    "last_name": "Citizen",
    "date_of_birth": "1990-04-12",
    "sex": "Female",
    "consent": true,
    "uti_symptoms": ["Dysuria", "Frequency"],
    "skin_condition": "Herpes Zoster"
  },
  "pharmacist": {"consultation_date": "2024-06-15", "full_name": "Alex Smith", "ahpra": "PHA0001234567"},
  "service": "Herpes Zoster",
  "answers": {"onset_within_72_hours": true}
}`

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService(&mockAuditor{}, newMockObserver(), nil))
	return h, echo.New()
}

func jsonContext(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Errorf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func TestHandler_CreateConsultation(t *testing.T) {
	h, e := newTestHandler()
	c, rec := jsonContext(e, "/api/v1/consultations", consultBody)

	if err := h.CreateConsultation(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		ID                string   `json:"id"`
		Age               int      `json:"age"`
		AvailableServices []string `json:"available_services"`
		Outcome           struct {
			Service        string `json:"service"`
			Disposition    string `json:"disposition"`
			Recommendation string `json:"recommendation"`
		} `json:"outcome"`
		Summary struct {
			FileName string `json:"file_name"`
			Text     string `json:"text"`
		} `json:"summary"`
		Messages []Message `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	if resp.ID == "" {
		t.Error("expected consultation id")
	}
	if resp.Age != 34 {
		t.Errorf("expected age 34, got %d", resp.Age)
	}
	if len(resp.AvailableServices) != 2 || resp.AvailableServices[1] != "Herpes Zoster" {
		t.Errorf("unexpected available services: %v", resp.AvailableServices)
	}
	if resp.Outcome.Service != "Herpes Zoster" || resp.Outcome.Disposition != "PROCEED" {
		t.Errorf("unexpected outcome: %+v", resp.Outcome)
	}
	if !strings.Contains(resp.Summary.Text, "Patient: Jane Citizen") {
		t.Errorf("summary missing patient name:\n%s", resp.Summary.Text)
	}
	if len(resp.Messages) == 0 {
		t.Error("expected presentation messages")
	}
}

func TestHandler_CreateConsultation_BadBody(t *testing.T) {
	h, e := newTestHandler()
	c, _ := jsonContext(e, "/api/v1/consultations", `{"intake": {"date_of_birth": "12/04/1990"}}`)

	expectHTTPError(t, h.CreateConsultation(c), http.StatusBadRequest)
}

func TestHandler_CreateConsultation_MissingFields(t *testing.T) {
	h, e := newTestHandler()
	c, _ := jsonContext(e, "/api/v1/consultations", `{"intake": {"first_name": "Jane"}}`)

	err := h.CreateConsultation(c)
	expectHTTPError(t, err, http.StatusUnprocessableEntity)
	if !strings.Contains(err.Error(), "last_name") || !strings.Contains(err.Error(), "ahpra") {
		t.Errorf("expected every missing field in message, got %v", err)
	}
}

func TestHandler_CreateConsultation_IneligibleService(t *testing.T) {
	h, e := newTestHandler()
	body := strings.Replace(consultBody, `"service": "Herpes Zoster"`, `"service": "Impetigo"`, 1)
	c, rec := jsonContext(e, "/api/v1/consultations", body)

	expectHTTPError(t, h.CreateConsultation(c), http.StatusUnprocessableEntity)
	if rec.Body.Len() != 0 {
		t.Error("expected no body to be written on failure")
	}
}

func TestHandler_CheckEligibility(t *testing.T) {
	h, e := newTestHandler()
	c, rec := jsonContext(e, "/api/v1/consultations/eligibility", consultBody)

	if err := h.CheckEligibility(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Eligibility struct {
			UTI       bool   `json:"uti"`
			UTIStatus string `json:"uti_status"`
		} `json:"eligibility"`
		AvailableServices []string  `json:"available_services"`
		Messages          []Message `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if !resp.Eligibility.UTI || resp.Eligibility.UTIStatus != "eligible" {
		t.Errorf("unexpected eligibility: %+v", resp.Eligibility)
	}
	last := resp.Messages[len(resp.Messages)-1]
	if last.Level != LevelChoice || last.Text != SelectServicePrompt {
		t.Errorf("expected service choice last, got %+v", last)
	}
}

func TestHandler_ExportSummary(t *testing.T) {
	h, e := newTestHandler()
	c, rec := jsonContext(e, "/api/v1/consultations/summary", consultBody)

	if err := h.ExportSummary(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/plain; charset=UTF-8" {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd != `attachment; filename="consultation_summary.txt"` {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "Pharmacist Consultation Summary\n") {
		t.Errorf("unexpected body:\n%s", rec.Body.String())
	}
}

func TestHandler_CreateThenExport_OneAuditRow(t *testing.T) {
	auditor := &mockAuditor{}
	obs := newMockObserver()
	h := NewHandler(newTestService(auditor, obs, nil))
	e := echo.New()

	c, _ := jsonContext(e, "/api/v1/consultations", consultBody)
	if err := h.CreateConsultation(c); err != nil {
		t.Fatalf("create: unexpected error: %v", err)
	}
	c, rec := jsonContext(e, "/api/v1/consultations/summary", consultBody)
	if err := h.ExportSummary(c); err != nil {
		t.Fatalf("export: unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if len(auditor.entries) != 1 {
		t.Errorf("expected 1 audit entry, got %d", len(auditor.entries))
	}
	if len(obs.consultations) != 1 {
		t.Errorf("expected 1 counted consultation, got %d", len(obs.consultations))
	}
}

func TestHandler_ListServices(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/services", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListServices(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Services []struct {
			Service string `json:"service"`
		} `json:"services"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(resp.Services) != 6 || resp.Services[0].Service != "UTI" {
		t.Errorf("unexpected catalogue: %+v", resp.Services)
	}
}

func TestToHTTPError_Internal(t *testing.T) {
	err := toHTTPError(errors.New("pool closed"))
	expectHTTPError(t, err, http.StatusInternalServerError)
	if strings.Contains(err.(*echo.HTTPError).Message.(string), "pool closed") {
		t.Error("internal error detail leaked to client message")
	}
}
