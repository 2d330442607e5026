package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Marketplaces conocidos. Otros valores se registran como MarketplaceOther.
const (
	MarketplaceShopee       = "Shopee"
	MarketplaceMercadoLivre = "Mercado Livre"
	MarketplaceOther        = "Outros"
)

// Marketplaces lista en el orden en que se ofrecen al usuario.
var Marketplaces = []string{MarketplaceShopee, MarketplaceMercadoLivre, MarketplaceOther}

// Sale representa una venta de un SKU en un marketplace.
type Sale struct {
	ID          string
	SKU         string
	Name        string
	Marketplace string
	Date        time.Time
	UnitPrice   decimal.Decimal
	Quantity    int64
	CreatedAt   time.Time
}

// Revenue devuelve UnitPrice × Quantity.
func (s *Sale) Revenue() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(s.Quantity))
}

// NormalizeMarketplace devuelve el nombre canónico o MarketplaceOther.
func NormalizeMarketplace(m string) string {
	m = strings.TrimSpace(m)
	for _, known := range Marketplaces {
		if strings.EqualFold(m, known) {
			return known
		}
	}
	return MarketplaceOther
}
