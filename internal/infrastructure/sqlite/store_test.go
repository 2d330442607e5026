package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/profit-ledger/internal/domain"
	"github.com/jhoicas/profit-ledger/internal/domain/entity"
	"github.com/jhoicas/profit-ledger/internal/domain/repository"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "dados.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestOpen_CreaArchivoYEsIdempotente(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)

	require.NoError(t, s.Purchases().Create(ctx, &entity.Purchase{
		ID: "p1", SKU: "A", Date: day(1, 5), UnitCost: decimal.RequireFromString("10.10"), Quantity: 3, CreatedAt: time.Now(),
	}))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Purchases().ListBySKU(ctx, "A", day(1, 31))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].UnitCost.Equal(decimal.RequireFromString("10.1")))
}

func TestPurchaseRepo_RoundTripYCorte(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	repo := s.Purchases()
	created := time.Date(2024, 1, 5, 13, 4, 5, 123, time.UTC)

	require.NoError(t, repo.Create(ctx, &entity.Purchase{ID: "1", SKU: "A", Name: "Camisa", Date: day(1, 5), UnitCost: decimal.RequireFromString("3.3333"), Quantity: 10, CreatedAt: created}))
	require.NoError(t, repo.Create(ctx, &entity.Purchase{ID: "2", SKU: "A", Date: day(1, 20), UnitCost: decimal.NewFromInt(14), Quantity: 10, CreatedAt: created}))
	require.NoError(t, repo.Create(ctx, &entity.Purchase{ID: "3", SKU: "B", Date: day(1, 1), UnitCost: decimal.NewFromInt(1), Quantity: 1, CreatedAt: created}))

	got, err := repo.ListBySKU(ctx, "A", day(1, 19))
	require.NoError(t, err)
	require.Len(t, got, 1)
	p := got[0]
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "Camisa", p.Name)
	assert.Equal(t, day(1, 5), p.Date)
	assert.True(t, p.UnitCost.Equal(decimal.RequireFromString("3.3333")), "decimal exacto, got %s", p.UnitCost)
	assert.Equal(t, int64(10), p.Quantity)
	assert.True(t, created.Equal(p.CreatedAt))

	got, err = repo.ListBySKU(ctx, "A", time.Date(2024, 1, 20, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, got, 2, "el corte es inclusivo y sin hora")
}

func TestListByMonth_OrdenYFiltro(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	for i, d := range []int{10, 3, 10, 31} {
		id := string(rune('a' + i))
		require.NoError(t, s.Purchases().Create(ctx, &entity.Purchase{ID: id, SKU: "A", Date: day(1, d), UnitCost: decimal.Zero, Quantity: 1}))
		require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ID: id, SKU: "A", Marketplace: entity.MarketplaceShopee, Date: day(1, d), UnitPrice: decimal.Zero, Quantity: 1}))
	}
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ID: "ml", SKU: "A", Marketplace: entity.MarketplaceMercadoLivre, Date: day(1, 15), UnitPrice: decimal.Zero, Quantity: 1}))
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ID: "feb", SKU: "A", Marketplace: entity.MarketplaceShopee, Date: day(2, 1), UnitPrice: decimal.Zero, Quantity: 1}))

	purchases, err := s.Purchases().ListByMonth(ctx, 2024, time.January)
	require.NoError(t, err)
	var ids []string
	for _, p := range purchases {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"d", "c", "a", "b"}, ids)

	sales, err := s.Sales().ListByMonth(ctx, 2024, time.January, entity.MarketplaceShopee)
	require.NoError(t, err)
	ids = nil
	for _, v := range sales {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids)

	all, err := s.Sales().ListByMonth(ctx, 2024, time.January, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestRun_RollbackDescartaEscrituras(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	boom := errors.New("boom")

	err := s.Run(ctx, func(p repository.PurchaseRepository, _ repository.SaleRepository) error {
		require.NoError(t, p.Create(ctx, &entity.Purchase{ID: "x", SKU: "A", Date: day(1, 1), UnitCost: decimal.Zero, Quantity: 1}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Purchases().ListBySKU(ctx, "A", day(12, 31))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreate_IDDuplicado_StorageUnavailable(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	sale := &entity.Sale{ID: "dup", SKU: "A", Marketplace: entity.MarketplaceShopee, Date: day(1, 1), UnitPrice: decimal.Zero, Quantity: 1}

	require.NoError(t, s.Sales().Create(ctx, sale))
	err := s.Sales().Create(ctx, sale)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
}

func TestOpen_EnMemoria(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ID: "1", SKU: "A", Marketplace: entity.MarketplaceShopee, Date: day(3, 1), UnitPrice: decimal.NewFromInt(5), Quantity: 1}))
	got, err := s.Sales().ListByMonth(ctx, 2024, time.March, "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
