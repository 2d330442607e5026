package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra de un SKU (entrada de inventario).
// Inmutable una vez persistida; nunca se borra automáticamente.
type Purchase struct {
	ID        string
	SKU       string
	Name      string // nombre del producto, solo informativo
	Date      time.Time
	UnitCost  decimal.Decimal
	Quantity  int64
	CreatedAt time.Time
}

// Total devuelve UnitCost × Quantity.
func (p *Purchase) Total() decimal.Decimal {
	return p.UnitCost.Mul(decimal.NewFromInt(p.Quantity))
}
