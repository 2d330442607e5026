// Package memory implementa los repositorios en memoria del proceso.
// Sirve para tests y para STORAGE_DRIVER=memory (demostraciones sin archivo).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/profit-ledger/internal/application/ports"
	"github.com/jhoicas/profit-ledger/internal/domain"
	"github.com/jhoicas/profit-ledger/internal/domain/entity"
	"github.com/jhoicas/profit-ledger/internal/domain/repository"
)

var (
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ ports.TxRunner                = (*Store)(nil)
)

type purchaseRow struct {
	seq int64
	p   entity.Purchase
}

type saleRow struct {
	seq int64
	s   entity.Sale
}

type tables struct {
	seq       int64
	purchases []purchaseRow
	sales     []saleRow
}

// Store guarda compras y ventas protegidas por un mutex.
type Store struct {
	mu sync.RWMutex
	t  tables
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{}
}

// Purchases devuelve el repositorio de compras sobre el almacén.
func (s *Store) Purchases() *PurchaseRepo {
	return &PurchaseRepo{view: storeView{s}}
}

// Sales devuelve el repositorio de ventas sobre el almacén.
func (s *Store) Sales() *SaleRepo {
	return &SaleRepo{view: storeView{s}}
}

// Run ejecuta fn sobre una copia del estado; las escrituras se aplican solo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable("iniciar transacción", err)
	}

	s.mu.RLock()
	tx := &txView{base: len(s.t.purchases), baseSales: len(s.t.sales), t: tables{
		seq:       s.t.seq,
		purchases: append([]purchaseRow(nil), s.t.purchases...),
		sales:     append([]saleRow(nil), s.t.sales...),
	}}
	s.mu.RUnlock()

	if err := fn(&PurchaseRepo{view: tx}, &SaleRepo{view: tx}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range tx.t.purchases[tx.base:] {
		s.t.seq++
		row.seq = s.t.seq
		s.t.purchases = append(s.t.purchases, row)
	}
	for _, row := range tx.t.sales[tx.baseSales:] {
		s.t.seq++
		row.seq = s.t.seq
		s.t.sales = append(s.t.sales, row)
	}
	return nil
}

// view abstrae el acceso a las tablas: directo (con lock) o dentro de una transacción.
type view interface {
	read(fn func(t *tables))
	write(fn func(t *tables))
}

type storeView struct{ s *Store }

func (v storeView) read(fn func(t *tables)) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	fn(&v.s.t)
}

func (v storeView) write(fn func(t *tables)) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	fn(&v.s.t)
}

type txView struct {
	base      int
	baseSales int
	t         tables
}

func (v *txView) read(fn func(t *tables))  { fn(&v.t) }
func (v *txView) write(fn func(t *tables)) { fn(&v.t) }

// ── Compras ───────────────────────────────────────────────────────────────────

// PurchaseRepo repositorio de compras en memoria.
type PurchaseRepo struct {
	view view
}

// Create agrega una copia de la compra.
func (r *PurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable("insertar compra", err)
	}
	r.view.write(func(t *tables) {
		t.seq++
		t.purchases = append(t.purchases, purchaseRow{seq: t.seq, p: *purchase})
	})
	return nil
}

// ListBySKU compras del SKU con fecha <= until.
func (r *PurchaseRepo) ListBySKU(ctx context.Context, sku string, until time.Time) ([]*entity.Purchase, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Unavailable("listar compras por SKU", err)
	}
	cutoff := domain.DayOf(until)
	var out []*entity.Purchase
	r.view.read(func(t *tables) {
		for _, row := range t.purchases {
			if row.p.SKU == sku && !row.p.Date.After(cutoff) {
				p := row.p
				out = append(out, &p)
			}
		}
	})
	return out, nil
}

// ListByMonth compras del mes, más recientes primero.
func (r *PurchaseRepo) ListByMonth(ctx context.Context, year int, month time.Month) ([]*entity.Purchase, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Unavailable("listar compras del mes", err)
	}
	start, end := domain.MonthRange(year, month)
	var rows []purchaseRow
	r.view.read(func(t *tables) {
		for _, row := range t.purchases {
			if !row.p.Date.Before(start) && row.p.Date.Before(end) {
				rows = append(rows, row)
			}
		}
	})
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].p.Date.Equal(rows[j].p.Date) {
			return rows[i].p.Date.After(rows[j].p.Date)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]*entity.Purchase, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i].p)
	}
	return out, nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// SaleRepo repositorio de ventas en memoria.
type SaleRepo struct {
	view view
}

// Create agrega una copia de la venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable("insertar venta", err)
	}
	r.view.write(func(t *tables) {
		t.seq++
		t.sales = append(t.sales, saleRow{seq: t.seq, s: *sale})
	})
	return nil
}

// ListByMonth ventas del mes en orden cronológico; marketplace vacío = todas.
func (r *SaleRepo) ListByMonth(ctx context.Context, year int, month time.Month, marketplace string) ([]*entity.Sale, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Unavailable("listar ventas del mes", err)
	}
	start, end := domain.MonthRange(year, month)
	var rows []saleRow
	r.view.read(func(t *tables) {
		for _, row := range t.sales {
			if row.s.Date.Before(start) || !row.s.Date.Before(end) {
				continue
			}
			if marketplace != "" && row.s.Marketplace != marketplace {
				continue
			}
			rows = append(rows, row)
		}
	})
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].s.Date.Equal(rows[j].s.Date) {
			return rows[i].s.Date.Before(rows[j].s.Date)
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]*entity.Sale, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i].s)
	}
	return out, nil
}

// Ping siempre disponible salvo contexto cancelado.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable("ping memoria", err)
	}
	return nil
}
