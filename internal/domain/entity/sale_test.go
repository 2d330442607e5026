package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeMarketplace(t *testing.T) {
	assert.Equal(t, MarketplaceShopee, NormalizeMarketplace("shopee"))
	assert.Equal(t, MarketplaceMercadoLivre, NormalizeMarketplace(" MERCADO LIVRE "))
	assert.Equal(t, MarketplaceOther, NormalizeMarketplace("Amazon"))
	assert.Equal(t, MarketplaceOther, NormalizeMarketplace(""))
}

func TestTotales(t *testing.T) {
	s := Sale{UnitPrice: decimal.RequireFromString("30"), Quantity: 5}
	assert.True(t, s.Revenue().Equal(decimal.NewFromInt(150)))

	p := Purchase{UnitCost: decimal.RequireFromString("10.50"), Quantity: 4}
	assert.True(t, p.Total().Equal(decimal.NewFromInt(42)))
}
