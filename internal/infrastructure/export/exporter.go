// Package export genera el reporte mensual en CSV, XLSX y PDF.
package export

import (
	"fmt"
	"strings"

	"github.com/jhoicas/profit-ledger/internal/application/dto"
	"github.com/jhoicas/profit-ledger/internal/domain"
)

// Formatos soportados.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

var contentTypes = map[string]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
}

// Document archivo listo para descargar.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Exporter genera los documentos del reporte mensual.
type Exporter struct {
	money   *Money
	company string
}

// NewExporter construye el exportador. company aparece en el encabezado del PDF.
func NewExporter(money *Money, company string) *Exporter {
	return &Exporter{money: money, company: company}
}

// Export genera el reporte en el formato pedido ("" = csv).
func (e *Exporter) Export(format string, rep *dto.MonthlyReportDTO) (*Document, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}

	var (
		body []byte
		err  error
	)
	switch format {
	case FormatCSV:
		body, err = WriteCSV(rep)
	case FormatXLSX:
		body, err = WriteXLSX(rep)
	case FormatPDF:
		body, err = e.WritePDF(rep)
	default:
		return nil, domain.Invalid("format", "oneof=csv xlsx pdf")
	}
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", format, err)
	}

	return &Document{
		Filename:    Filename(rep.Period, format),
		ContentType: contentTypes[format],
		Body:        body,
	}, nil
}

// Filename nombre de descarga, ej: relatorio_lucro_2024_01.csv.
func Filename(p dto.PeriodDTO, ext string) string {
	return fmt.Sprintf("relatorio_lucro_%04d_%02d.%s", p.Year, p.Month, ext)
}
