package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/profit-ledger/internal/domain/entity"
	"github.com/jhoicas/profit-ledger/internal/domain/repository"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestPurchaseRepo_ListBySKU_CorteInclusivo(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Purchases()

	require.NoError(t, repo.Create(ctx, &entity.Purchase{ID: "1", SKU: "A", Date: day(5), UnitCost: decimal.NewFromInt(10), Quantity: 1}))
	require.NoError(t, repo.Create(ctx, &entity.Purchase{ID: "2", SKU: "A", Date: day(20), UnitCost: decimal.NewFromInt(14), Quantity: 1}))
	require.NoError(t, repo.Create(ctx, &entity.Purchase{ID: "3", SKU: "B", Date: day(1), UnitCost: decimal.NewFromInt(1), Quantity: 1}))

	got, err := repo.ListBySKU(ctx, "A", day(20))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.ListBySKU(ctx, "A", day(19))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestListByMonth_Orden(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for i, d := range []int{10, 3, 10, 31} {
		id := string(rune('a' + i))
		require.NoError(t, s.Purchases().Create(ctx, &entity.Purchase{ID: id, SKU: "A", Date: day(d), Quantity: 1}))
		require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ID: id, SKU: "A", Marketplace: entity.MarketplaceShopee, Date: day(d), Quantity: 1}))
	}
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ID: "feb", SKU: "A", Date: day(1).AddDate(0, 1, 0), Quantity: 1}))

	purchases, err := s.Purchases().ListByMonth(ctx, 2024, time.January)
	require.NoError(t, err)
	var ids []string
	for _, p := range purchases {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"d", "c", "a", "b"}, ids, "más recientes primero")

	sales, err := s.Sales().ListByMonth(ctx, 2024, time.January, "")
	require.NoError(t, err)
	ids = nil
	for _, v := range sales {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids, "orden cronológico")

	filtered, err := s.Sales().ListByMonth(ctx, 2024, time.January, entity.MarketplaceMercadoLivre)
	require.NoError(t, err)
	assert.Empty(t, filtered)
}

func TestRun_ConfirmaYDescarta(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.Run(ctx, func(p repository.PurchaseRepository, _ repository.SaleRepository) error {
		return p.Create(ctx, &entity.Purchase{ID: "ok", SKU: "A", Date: day(1), Quantity: 1})
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Run(ctx, func(p repository.PurchaseRepository, _ repository.SaleRepository) error {
		require.NoError(t, p.Create(ctx, &entity.Purchase{ID: "rollback", SKU: "A", Date: day(1), Quantity: 1}))
		inTx, err := p.ListBySKU(ctx, "A", day(1))
		require.NoError(t, err)
		assert.Len(t, inTx, 2, "la transacción ve sus propias escrituras")
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Purchases().ListBySKU(ctx, "A", day(31))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
}

func TestRun_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewStore().Run(ctx, func(repository.PurchaseRepository, repository.SaleRepository) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}
