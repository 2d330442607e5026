package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/profit-ledger/internal/application/dto"
	"github.com/jhoicas/profit-ledger/internal/application/ledger"
	"github.com/jhoicas/profit-ledger/pkg/logger"
)

// LedgerHandler registro de compras/ventas y consulta de costos.
type LedgerHandler struct {
	uc  *ledger.LedgerUseCase
	log *logger.Logger
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase, log *logger.Logger) *LedgerHandler {
	return &LedgerHandler{uc: uc, log: log}
}

// RecordPurchase godoc
// @Summary      Registrar compra
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPurchaseRequest  true  "Compra"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *LedgerHandler) RecordPurchase(c *fiber.Ctx) error {
	var in dto.RecordPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordPurchase(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPurchases godoc
// @Summary      Listar compras del mes
// @Tags         purchases
// @Produce      json
// @Param        year   query  int  false  "Año (por defecto el actual)"
// @Param        month  query  int  false  "Mes 1-12 (por defecto el actual)"
// @Success      200    {object}  dto.PurchaseListDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *LedgerHandler) ListPurchases(c *fiber.Ctx) error {
	q, err := monthQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.ListPurchases(c.UserContext(), q.Year, q.Month)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RecordSale godoc
// @Summary      Registrar venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *LedgerHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordSale(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSales godoc
// @Summary      Listar ventas del mes
// @Tags         sales
// @Produce      json
// @Param        year         query  int     false  "Año"
// @Param        month        query  int     false  "Mes 1-12"
// @Param        marketplace  query  string  false  "Shopee, Mercado Livre, Outros o Todos"
// @Success      200          {object}  dto.SaleListDTO
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *LedgerHandler) ListSales(c *fiber.Ctx) error {
	q, err := monthQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.ListSales(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CostAsOf godoc
// @Summary      Costo promedio ponderado de un SKU a una fecha
// @Tags         costs
// @Produce      json
// @Param        sku    path   string  true   "SKU"
// @Param        as_of  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200    {object}  dto.CostSnapshotDTO
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/costs/{sku} [get]
func (h *LedgerHandler) CostAsOf(c *fiber.Ctx) error {
	out, err := h.uc.CostAsOf(c.UserContext(), c.Params("sku"), c.Query("as_of"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CostHistory godoc
// @Summary      Evolución del costo promedio de un SKU
// @Tags         costs
// @Produce      json
// @Param        sku    path   string  true   "SKU"
// @Param        as_of  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200    {array}   dto.CostHistoryEntryDTO
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/costs/{sku}/history [get]
func (h *LedgerHandler) CostHistory(c *fiber.Ctx) error {
	out, err := h.uc.CostHistory(c.UserContext(), c.Params("sku"), c.Query("as_of"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// monthQuery lee year/month/marketplace; sin year ni month usa el mes actual.
func monthQuery(c *fiber.Ctx) (dto.MonthQuery, error) {
	var q dto.MonthQuery
	if err := c.QueryParser(&q); err != nil {
		return q, err
	}
	if q.Year == 0 && q.Month == 0 {
		now := time.Now()
		q.Year, q.Month = now.Year(), int(now.Month())
	}
	return q, nil
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
}
