package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"abarrote/internal/domain/register"
)

// StockHandler serves both stock registers.
type StockHandler struct {
	svc *register.StockService
}

// NewStockHandler creates a stock handler.
func NewStockHandler(svc *register.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

type stockInsumoBody struct {
	IDInsumo int64           `json:"id_insumo" binding:"required"`
	Cantidad decimal.Decimal `json:"cantidad"`
}

type stockProductoBody struct {
	IDProducto int64           `json:"id_producto" binding:"required"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

type cantidadBody struct {
	Cantidad decimal.Decimal `json:"cantidad" binding:"required"`
}

// ListInsumos returns every supply stock row.
// GET /api/stock-insumos
func (h *StockHandler) ListInsumos(c *gin.Context) {
	rows, err := h.svc.ListInsumos(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, rows)
}

// GetInsumo returns the stock row of one supply.
// GET /api/stock-insumos/:idInsumo
func (h *StockHandler) GetInsumo(c *gin.Context) {
	idInsumo, ok := pathID(c, "idInsumo")
	if !ok {
		return
	}

	s, err := h.svc.GetInsumo(c.Request.Context(), idInsumo)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, s)
}

// UpsertInsumo creates or overwrites a supply stock row.
// POST /api/stock-insumos
func (h *StockHandler) UpsertInsumo(c *gin.Context) {
	var body stockInsumoBody
	if err := c.ShouldBindJSON(&body); err != nil {
		failBinding(c, err)
		return
	}

	s, err := h.svc.UpsertInsumo(c.Request.Context(), body.IDInsumo, body.Cantidad)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, s)
}

// SetInsumoCantidad overwrites the quantity of a supply stock row.
// PATCH /api/stock-insumos/:idInsumo
func (h *StockHandler) SetInsumoCantidad(c *gin.Context) {
	idInsumo, ok := pathID(c, "idInsumo")
	if !ok {
		return
	}

	var body cantidadBody
	if err := c.ShouldBindJSON(&body); err != nil {
		failBinding(c, err)
		return
	}

	s, err := h.svc.SetInsumoCantidad(c.Request.Context(), idInsumo, body.Cantidad)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, s)
}

// ListProductos returns every product stock row.
// GET /api/stock-productos
func (h *StockHandler) ListProductos(c *gin.Context) {
	rows, err := h.svc.ListProductos(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, rows)
}

// GetProducto returns the stock row of one product.
// GET /api/stock-productos/:idProducto
func (h *StockHandler) GetProducto(c *gin.Context) {
	idProducto, ok := pathID(c, "idProducto")
	if !ok {
		return
	}

	s, err := h.svc.GetProducto(c.Request.Context(), idProducto)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, s)
}

// UpsertProducto creates or overwrites a product stock row.
// POST /api/stock-productos
func (h *StockHandler) UpsertProducto(c *gin.Context) {
	var body stockProductoBody
	if err := c.ShouldBindJSON(&body); err != nil {
		failBinding(c, err)
		return
	}

	s, err := h.svc.UpsertProducto(c.Request.Context(), body.IDProducto, body.Cantidad)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, s)
}

// AddProductoCantidad adds the given quantity to a product stock row.
// The supply register overwrites instead; the asymmetry is
// intentional.
// PATCH /api/stock-productos/:idProducto
func (h *StockHandler) AddProductoCantidad(c *gin.Context) {
	idProducto, ok := pathID(c, "idProducto")
	if !ok {
		return
	}

	var body cantidadBody
	if err := c.ShouldBindJSON(&body); err != nil {
		failBinding(c, err)
		return
	}

	s, err := h.svc.AddProductoCantidad(c.Request.Context(), idProducto, body.Cantidad)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, s)
}
