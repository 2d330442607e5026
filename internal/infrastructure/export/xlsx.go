package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/profit-ledger/internal/application/dto"
)

// Hojas del libro.
const (
	sheetSales      = "Vendas"
	sheetSummary    = "Resumo"
	sheetUnresolved = "Sem custo"
)

// formato de número "#,##0.00" incorporado en Excel
const numFmtMoney = 4

// WriteXLSX genera el libro: hoja "Vendas" con el detalle, "Resumo" con los totales
// y "Sem custo" cuando hay ventas sin base de costo.
func WriteXLSX(rep *dto.MonthlyReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSales); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney})
	if err != nil {
		return nil, err
	}

	// ── Vendas ─────────────────────────────────────────────────────────────────
	if err := setRow(f, sheetSales, 1, toAny(salesHeader)); err != nil {
		return nil, err
	}
	for i, s := range rep.Sales {
		if err := setRow(f, sheetSales, i+2, []any{
			s.SaleID, s.Date, s.SKU, s.Name, s.Marketplace, s.Quantity,
			num(s.UnitPrice), num(s.UnitCost.Round(4)),
			num(s.Revenue), num(s.MarketplaceFee), num(s.FixedFee), num(s.Tax),
			num(s.CostOfGoods), num(s.Profit), num(s.MarginPct),
		}); err != nil {
			return nil, err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(salesHeader))
	if err := f.SetCellStyle(sheetSales, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}
	if len(rep.Sales) > 0 {
		if err := f.SetCellStyle(sheetSales, "G2", fmt.Sprintf("N%d", len(rep.Sales)+1), money); err != nil {
			return nil, err
		}
	}

	// ── Resumo ─────────────────────────────────────────────────────────────────
	ind := rep.Indicators
	summary := [][]any{
		{"Período", rep.Period.StartDate + " a " + rep.Period.EndDate},
		{"Marketplace", marketplaceLabel(rep.Marketplace)},
		{"Vendas", ind.SalesCount},
		{"Unidades", num(ind.UnitsSold)},
		{"Faturamento", num(ind.Revenue)},
		{"Taxa marketplace", num(ind.MarketplaceFees)},
		{"Taxa fixa", num(ind.FixedFees)},
		{"Imposto", num(ind.Tax)},
		{"Custo dos produtos", num(ind.CostOfGoods)},
		{"Lucro", num(ind.Profit)},
		{"Margem %", num(ind.MarginPct)},
		{"Completo", rep.Complete},
	}
	for i, r := range summary {
		if err := setRow(f, sheetSummary, i+1, r); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheetSummary, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetSummary, "B5", "B10", money); err != nil {
		return nil, err
	}

	// ── Sem custo ──────────────────────────────────────────────────────────────
	if len(rep.Unresolved) > 0 {
		if _, err := f.NewSheet(sheetUnresolved); err != nil {
			return nil, err
		}
		if err := setRow(f, sheetUnresolved, 1, toAny(unresolvedHeader)); err != nil {
			return nil, err
		}
		for i, u := range rep.Unresolved {
			if err := setRow(f, sheetUnresolved, i+2, []any{
				u.SaleID, u.Date, u.SKU, u.Name, u.Marketplace, u.Quantity, num(u.UnitPrice), u.Reason,
			}); err != nil {
				return nil, err
			}
		}
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// num convierte a float64 para que Excel lo trate como número.
func num(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
