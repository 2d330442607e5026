package export

// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + título   │  Mes + período + marketplace  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INDICADORES: Faturamento / Deduções / Custo / Lucro        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Data | SKU / Produto | Qtd | Fat. | Custo | Lucro   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PENDENTES: ventas sin base de costo (si hay)               │
//	└─────────────────────────────────────────────────────────────┘

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/profit-ledger/internal/application/dto"
	"github.com/jhoicas/profit-ledger/internal/domain"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 20, Blue: 20}
)

// WritePDF genera el estado de resultados del mes y devuelve sus bytes.
func (e *Exporter) WritePDF(rep *dto.MonthlyReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de lucro", true).
		WithAuthor(e.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(e.headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(e.indicatorRows(rep.Indicators)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(rep.Sales) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sem vendas no período selecionado.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(e.tableDetailRows(rep.Sales)...)

	if len(rep.Unresolved) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(e.unresolvedRows(rep.Unresolved)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + título (izq) y mes + período (der).
func (e *Exporter) headerRow(rep *dto.MonthlyReportDTO) core.Row {
	p := rep.Period
	return row.New(18).Add(
		col.New(7).Add(
			text.New(e.company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Relatório mensal de lucro", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(domain.MonthLabel(p.Year, time.Month(p.Month)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New(fmt.Sprintf("%s a %s", p.StartDate, p.EndDate), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Marketplace: "+marketplaceLabel(rep.Marketplace), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// indicatorRows: totales del mes en dos filas de tres columnas.
func (e *Exporter) indicatorRows(ind dto.MonthlyIndicatorsDTO) []core.Row {
	metric := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		)
	}
	profitColor := colorPrimary
	if ind.Profit.IsNegative() {
		profitColor = colorRed
	}

	return []core.Row{
		row.New(12).Add(
			metric("Faturamento", e.money.Format(ind.Revenue)),
			metric("Custo dos produtos", e.money.Format(ind.CostOfGoods)),
			metric("Vendas / unidades", fmt.Sprintf("%d / %s", ind.SalesCount, ind.UnitsSold)),
		),
		row.New(12).Add(
			metric("Taxa marketplace", e.money.Format(ind.MarketplaceFees)),
			metric("Taxa fixa", e.money.Format(ind.FixedFees)),
			metric("Imposto", e.money.Format(ind.Tax)),
		),
		row.New(12).Add(
			col.New(8).Add(text.New("LUCRO TOTAL", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: profitColor, Top: 2, Right: 2,
			})),
			col.New(4).Add(text.New(
				fmt.Sprintf("%s  (%s)", e.money.Format(ind.Profit), e.money.Percent(ind.MarginPct)),
				props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: profitColor, Top: 2, Right: 1},
			)),
		),
	}
}

// tableHeaderRow: cabecera de la tabla de ventas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Data", 2, align.Left),
		h("SKU / Produto", 3, align.Left),
		h("Qtd", 1, align.Center),
		h("Faturamento", 2, align.Right),
		h("Custo médio", 2, align.Right),
		h("Lucro", 2, align.Right),
	)
}

// tableDetailRows: una fila por venta resuelta.
func (e *Exporter) tableDetailRows(sales []dto.ProfitBreakdownDTO) []core.Row {
	result := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		label := s.SKU
		if s.Name != "" {
			label += " - " + s.Name
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(s.Date, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprint(s.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(e.money.Format(s.Revenue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(e.money.Format(s.UnitCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(e.money.Format(s.Profit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// unresolvedRows: ventas excluidas de los totales.
func (e *Exporter) unresolvedRows(list []dto.UnresolvedSaleDTO) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("VENDAS SEM BASE DE CUSTO (fora dos totais)", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorRed, Top: 2,
			}),
		)),
	}
	for _, u := range list {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s   %s   %d un. x %s   sem compras até esta data",
				u.Date, u.SKU, u.Quantity, e.money.Format(u.UnitPrice),
			), props.Text{Size: 7.5, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}
