package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pojisteni/insurance-agency/internal/report"
)

// ReportHandler produces the downloadable PDF summary of the agency's
// records.
type ReportHandler struct {
	Holders  PolicyHolderStore
	Policies PolicyStore
	Events   EventStore
}

func NewReportHandler(h PolicyHolderStore, p PolicyStore, e EventStore) *ReportHandler {
	return &ReportHandler{Holders: h, Policies: p, Events: e}
}

// Summary handles GET /v1/report. The counts are gathered first; any
// failure, in the queries or in the PDF backend, yields a structured
// error response rather than a partial document.
func (h *ReportHandler) Summary(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	holders, err := h.Holders.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	policies, err := h.Policies.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	events, err := h.Events.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	data, err := report.Render(report.Summary{
		PolicyHolders: holders,
		Policies:      policies,
		Events:        events,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "report generation failed"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="report.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}
