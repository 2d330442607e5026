package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/profit-ledger/internal/application/dto"
)

// Tipos de archivo aceptados.
const (
	kindPurchases = "purchases"
	kindSales     = "sales"
)

// row línea del CSV ya mapeada por nombre de columna.
type row struct {
	line   int
	fields map[string]string
}

func (r row) get(col string) string {
	return strings.TrimSpace(r.fields[col])
}

// requiredColumns columnas obligatorias por tipo; name y marketplace son opcionales.
var requiredColumns = map[string][]string{
	kindPurchases: {"sku", "date", "unit_cost", "quantity"},
	kindSales:     {"sku", "date", "unit_price", "quantity"},
}

// newReader aplica la codificación del archivo (utf-8 o latin1) y el separador.
func newReader(in io.Reader, encoding string, sep rune) (*csv.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1":
		in = transform.NewReader(in, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada: %q (use utf-8 o latin1)", encoding)
	}
	r := csv.NewReader(in)
	r.Comma = sep
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	return r, nil
}

// readRows lee la cabecera, valida las columnas obligatorias y devuelve las filas no vacías.
func readRows(r *csv.Reader, kind string) ([]row, error) {
	required, ok := requiredColumns[kind]
	if !ok {
		return nil, fmt.Errorf("tipo desconocido: %q (use purchases o sales)", kind)
	}

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}

	var rows []row
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}
		fields := make(map[string]string, len(index))
		for col, i := range index {
			if i < len(rec) {
				fields[col] = rec[i]
			}
		}
		rows = append(rows, row{line: line, fields: fields})
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// toPurchase arma el request; la validación de negocio queda en el caso de uso.
func toPurchase(r row) (dto.RecordPurchaseRequest, error) {
	cost, err := parseMoney(r.get("unit_cost"))
	if err != nil {
		return dto.RecordPurchaseRequest{}, fmt.Errorf("unit_cost: %w", err)
	}
	qty, err := parseQuantity(r.get("quantity"))
	if err != nil {
		return dto.RecordPurchaseRequest{}, fmt.Errorf("quantity: %w", err)
	}
	return dto.RecordPurchaseRequest{
		SKU:      r.get("sku"),
		Name:     r.get("name"),
		Date:     r.get("date"),
		UnitCost: cost,
		Quantity: qty,
	}, nil
}

func toSale(r row) (dto.RecordSaleRequest, error) {
	price, err := parseMoney(r.get("unit_price"))
	if err != nil {
		return dto.RecordSaleRequest{}, fmt.Errorf("unit_price: %w", err)
	}
	qty, err := parseQuantity(r.get("quantity"))
	if err != nil {
		return dto.RecordSaleRequest{}, fmt.Errorf("quantity: %w", err)
	}
	return dto.RecordSaleRequest{
		SKU:         r.get("sku"),
		Name:        r.get("name"),
		Marketplace: r.get("marketplace"),
		Date:        r.get("date"),
		UnitPrice:   price,
		Quantity:    qty,
	}, nil
}

// parseMoney acepta "10.50", "10,50", "1.234,50" y "1,234.50"; vacío devuelve nil (el caso de uso lo rechaza).
func parseMoney(raw string) (*decimal.Decimal, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "R$"))
	if s == "" {
		return nil, nil
	}
	// con ambos separadores, el último es el decimal: "1.234,50" y "1,234.50"
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("valor inválido %q", raw)
	}
	return &d, nil
}

func parseQuantity(raw string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("cantidad inválida %q", raw)
	}
	return d.IntPart(), nil
}
