package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/profit-ledger/internal/application/dto"
)

// salesHeader columnas de la sección de ventas (una fila por venta resuelta).
var salesHeader = []string{
	"id", "data", "sku", "nome", "marketplace", "quantidade", "preco_unit", "custo_medio_unit",
	"faturamento", "taxa_marketplace", "taxa_fixa", "imposto", "custo_produtos", "lucro", "margem_pct",
}

var unresolvedHeader = []string{"id", "data", "sku", "nome", "marketplace", "quantidade", "preco_unit", "motivo"}

// WriteCSV escribe el reporte plano: ventas, línea vacía, resumen y, si hay, ventas sin base de costo.
// Los montos van con punto decimal y sin símbolo para que otra herramienta pueda leerlos.
func WriteCSV(rep *dto.MonthlyReportDTO) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{salesHeader}
	for _, s := range rep.Sales {
		records = append(records, []string{
			s.SaleID, s.Date, s.SKU, s.Name, s.Marketplace,
			strconv.FormatInt(s.Quantity, 10),
			cents(s.UnitPrice),
			s.UnitCost.StringFixed(4),
			cents(s.Revenue),
			cents(s.MarketplaceFee),
			cents(s.FixedFee),
			cents(s.Tax),
			cents(s.CostOfGoods),
			cents(s.Profit),
			cents(s.MarginPct),
		})
	}

	ind := rep.Indicators
	records = append(records,
		[]string{},
		[]string{"resumo", "valor"},
		[]string{"periodo", rep.Period.StartDate + " a " + rep.Period.EndDate},
		[]string{"marketplace", marketplaceLabel(rep.Marketplace)},
		[]string{"vendas", strconv.Itoa(ind.SalesCount)},
		[]string{"unidades", ind.UnitsSold.String()},
		[]string{"faturamento", cents(ind.Revenue)},
		[]string{"taxa_marketplace", cents(ind.MarketplaceFees)},
		[]string{"taxa_fixa", cents(ind.FixedFees)},
		[]string{"imposto", cents(ind.Tax)},
		[]string{"custo_produtos", cents(ind.CostOfGoods)},
		[]string{"lucro", cents(ind.Profit)},
		[]string{"margem_pct", cents(ind.MarginPct)},
		[]string{"completo", strconv.FormatBool(rep.Complete)},
	)

	if len(rep.Unresolved) > 0 {
		records = append(records, []string{}, []string{"sem_base_de_custo"}, unresolvedHeader)
		for _, u := range rep.Unresolved {
			records = append(records, []string{
				u.SaleID, u.Date, u.SKU, u.Name, u.Marketplace,
				strconv.FormatInt(u.Quantity, 10),
				cents(u.UnitPrice),
				u.Reason,
			})
		}
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cents(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func marketplaceLabel(m string) string {
	if m == "" {
		return "Todos"
	}
	return m
}
