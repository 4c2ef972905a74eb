package consultation

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pharmconsult/pharmconsult/internal/domain/triage"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/services", h.ListServices)
	api.POST("/consultations/eligibility", h.CheckEligibility)
	api.POST("/consultations", h.CreateConsultation)
	api.POST("/consultations/summary", h.ExportSummary)
}

type screeningResponse struct {
	Screening
	Messages []Message `json:"messages"`
}

type consultationResponse struct {
	*Consultation
	Messages []Message `json:"messages"`
}

func (h *Handler) ListServices(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"services": triage.Catalogue(),
	})
}

func (h *Handler) CheckEligibility(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	scr, err := h.svc.Screen(c.Request().Context(), req.Intake, req.Pharmacist.ConsultationDate)
	if err != nil {
		return toHTTPError(err)
	}

	log := NewMessageLog()
	PresentScreening(log, scr)
	return c.JSON(http.StatusOK, screeningResponse{Screening: scr, Messages: log.Messages})
}

func (h *Handler) CreateConsultation(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	log := NewMessageLog()
	out, err := h.svc.Run(c.Request().Context(), StaticSource(req), log)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, consultationResponse{Consultation: out, Messages: log.Messages})
}

// ExportSummary re-renders the consultation and returns only the summary
// file. It writes no audit row.
func (h *Handler) ExportSummary(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	out, err := h.svc.Preview(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", out.Summary.FileName))
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, out.Summary.Bytes())
}

func toHTTPError(err error) error {
	if IsValidation(err) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
}
