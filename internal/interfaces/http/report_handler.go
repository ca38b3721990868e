package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/application/report"
)

// ReportHandler maneja las descargas de reportes (PDF y Excel).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// MovementHistoryPDF godoc
// @Summary      Descargar el historial de movimientos en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        limit  query  int  false  "Máximo de movimientos (default 200)"
// @Success      200  {file}  binary
// @Router       /api/reports/movements.pdf [get]
func (h *ReportHandler) MovementHistoryPDF(c *fiber.Ctx) error {
	data, err := h.uc.MovementHistoryPDF(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.pdf"`)
	return c.Send(data)
}

// StockOverviewXLSX godoc
// @Summary      Descargar la planilla de stock en Excel
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/reports/stock.xlsx [get]
func (h *ReportHandler) StockOverviewXLSX(c *fiber.Ctx) error {
	data, err := h.uc.StockOverviewXLSX(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock.xlsx"`)
	return c.Send(data)
}
