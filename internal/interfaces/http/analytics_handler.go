package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Ventas-api/internal/application/analytics"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

// ReportHandler reportes de ventas por período.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func reportQuery(c *fiber.Ctx) dto.SalesReportRequest {
	return dto.SalesReportRequest{
		From:     c.Query("from"),
		To:       c.Query("to"),
		IssuerID: c.Query("issuer_id"),
		TopN:     c.QueryInt("top_n", 0),
	}
}

// SalesReport godoc
// @Summary      Reporte de ventas
// @Description  Totales, serie diaria, productos más vendidos y ventas por vendedor (admin).
// @Description  Por defecto: del día 1 del mes en curso a hoy. Excluye ventas anuladas.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from       query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        issuer_id  query  string  false  "Vendedor (solo admin)"
// @Param        top_n      query  int     false  "Cantidad de productos"  default(10)
// @Success      200        {object}  dto.SalesReportDTO
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	out, err := h.uc.SalesReport(c.Context(), Actor(c), reportQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesReportPDF godoc
// @Summary      Reporte de ventas en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from       query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        issuer_id  query  string  false  "Vendedor (solo admin)"
// @Success      200        {file}    file
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/reports/sales/pdf [get]
func (h *ReportHandler) SalesReportPDF(c *fiber.Ctx) error {
	pdf, name, err := h.uc.SalesReportPDF(c.Context(), Actor(c), reportQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(pdf)
}
