package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/commodities-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard (solo manager).
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	report *appanalytics.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, report *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report}
}

// GetStats godoc
// @Summary      Métricas del inventario
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// DownloadReport godoc
// @Summary      Reporte PDF del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/report [get]
func (h *DashboardHandler) DownloadReport(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.report.DownloadStatsReport(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
