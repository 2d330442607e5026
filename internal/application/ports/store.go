package ports

import (
	"context"

	"github.com/jhoicas/profit-ledger/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción del almacén, con repositorios atados a ella.
// Las lecturas hechas dentro de fn ven una misma instantánea consistente; si fn falla no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
