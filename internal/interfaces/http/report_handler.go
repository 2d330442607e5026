package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/profit-ledger/internal/application/report"
	"github.com/jhoicas/profit-ledger/internal/infrastructure/export"
	"github.com/jhoicas/profit-ledger/pkg/logger"
)

// ReportHandler reporte mensual y su exportación.
type ReportHandler struct {
	uc       *report.MonthlyReportUseCase
	exporter *export.Exporter
	log      *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.MonthlyReportUseCase, exporter *export.Exporter, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, exporter: exporter, log: log}
}

// Monthly godoc
// @Summary      Reporte mensual de ganancias
// @Description  Desglose por venta con el costo promedio ponderado a la fecha de cada venta, más los totales.
// @Description  Las ventas sin base de costo se listan en "unresolved" y complete=false.
// @Tags         reports
// @Produce      json
// @Param        year         query  int     false  "Año"
// @Param        month        query  int     false  "Mes 1-12"
// @Param        marketplace  query  string  false  "Filtro de marketplace"
// @Success      200          {object}  dto.MonthlyReportDTO
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      422          {object}  dto.ErrorResponse
// @Failure      503          {object}  dto.ErrorResponse
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	q, err := monthQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.GetMonthlyReport(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Descargar el reporte mensual
// @Tags         reports
// @Produce      text/csv
// @Produce      application/pdf
// @Param        year         query  int     false  "Año"
// @Param        month        query  int     false  "Mes 1-12"
// @Param        marketplace  query  string  false  "Filtro de marketplace"
// @Param        format       query  string  false  "csv (por defecto), xlsx o pdf"
// @Success      200
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/reports/monthly/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	q, err := monthQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	rep, err := h.uc.GetMonthlyReport(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	doc, err := h.exporter.Export(c.Query("format"), rep)
	if err != nil {
		return writeError(c, h.log, err)
	}

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(doc.Body)))
	return c.Send(doc.Body)
}
