package export

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money formatea montos para lectura humana según el locale, ej: "R$ 1.234,56".
type Money struct {
	symbol  string
	printer *message.Printer
}

// NewMoney construye el formateador. Un locale inválido cae en pt-BR.
func NewMoney(symbol, locale string) *Money {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	return &Money{symbol: symbol, printer: message.NewPrinter(tag)}
}

// Format redondea a centavos y agrega el símbolo.
func (m *Money) Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	s := m.printer.Sprint(number.Decimal(f, number.Scale(2)))
	if m.symbol == "" {
		return s
	}
	return m.symbol + " " + s
}

// Percent formatea un porcentaje con 2 decimales, ej: "18,67%".
func (m *Money) Percent(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return m.printer.Sprint(number.Decimal(f, number.Scale(2))) + "%"
}
