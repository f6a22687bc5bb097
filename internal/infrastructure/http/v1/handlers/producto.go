package handlers

import (
	"github.com/gin-gonic/gin"

	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

// The product catalog is browsed without paging in practice, so the
// fallback page size is generous.
const defaultProductoLimit = 500

// ProductoHandler serves the product CRUD family plus the bill of
// materials and marketplace flag sub-resources.
type ProductoHandler struct {
	*Base
	svc *catalog.ProductoService
}

// NewProductoHandler creates a product handler.
func NewProductoHandler(base *Base, svc *catalog.ProductoService) *ProductoHandler {
	return &ProductoHandler{Base: base, svc: svc}
}

// List returns products paginated.
// GET /api/productos?page&limit&search&tipoProducto&status
func (h *ProductoHandler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), listFilter(c, defaultProductoLimit))
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, result)
}

// Get returns one product.
// GET /api/productos/:id
func (h *ProductoHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, p)
}

// Create inserts a product; the SKU must be unused.
// POST /api/productos
func (h *ProductoHandler) Create(c *gin.Context) {
	var in catalog.CreateProducto
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "producto", p.IDProducto, postgres.AuditActionCreate, p)
	respondCreated(c, p)
}

// Update applies a partial update, replacing the bill of materials
// when the body carries an insumos array.
// PUT /api/productos/:id
func (h *ProductoHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch catalog.UpdateProducto
	if err := c.ShouldBindJSON(&patch); err != nil {
		failBinding(c, err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "producto", id, postgres.AuditActionUpdate, patch)
	respondOK(c, p)
}

// Delete marks the product inactive.
// DELETE /api/productos/:id
func (h *ProductoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	h.record(c, "producto", id, postgres.AuditActionDelete, nil)
	respondMessage(c, "Producto eliminado correctamente")
}

// --- Marketplace flag ---

type publicadoMLBody struct {
	PublicadoML string `json:"publicado_ml" binding:"required"`
}

// SetPublicadoML sets the marketplace flag explicitly.
// PATCH /api/productos/:id/publicado-ml
func (h *ProductoHandler) SetPublicadoML(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body publicadoMLBody
	if err := c.ShouldBindJSON(&body); err != nil {
		failBinding(c, err)
		return
	}

	p, err := h.svc.SetPublicadoML(c.Request.Context(), id, body.PublicadoML)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "producto", id, postgres.AuditActionUpdate, body)
	respondOK(c, p)
}

// TogglePublicadoML flips the marketplace flag.
// PATCH /api/productos/:id/toggle-publicado-ml
func (h *ProductoHandler) TogglePublicadoML(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.TogglePublicadoML(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "producto", id, postgres.AuditActionUpdate, gin.H{"publicado_ml": p.PublicadoML})
	respondOK(c, p)
}

// --- Bill of materials ---

// ListInsumos returns the product's lines.
// GET /api/productos/:id/insumos
func (h *ProductoHandler) ListInsumos(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	lines, err := h.svc.ListInsumos(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, lines)
}

// AddInsumo upserts one line.
// POST /api/productos/:id/insumos
func (h *ProductoHandler) AddInsumo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var line catalog.BOMLine
	if err := c.ShouldBindJSON(&line); err != nil {
		failBinding(c, err)
		return
	}

	saved, err := h.svc.AddInsumo(c.Request.Context(), id, line)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "producto", id, postgres.AuditActionUpdate, line)
	respondCreated(c, saved)
}

type replaceInsumosBody struct {
	Insumos []catalog.BOMLine `json:"insumos" binding:"required"`
}

// ReplaceInsumos swaps the whole line set.
// PUT /api/productos/:id/insumos
func (h *ProductoHandler) ReplaceInsumos(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body replaceInsumosBody
	if err := c.ShouldBindJSON(&body); err != nil {
		failBinding(c, err)
		return
	}

	lines, err := h.svc.ReplaceInsumos(c.Request.Context(), id, body.Insumos)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "producto", id, postgres.AuditActionUpdate, body)
	respondOK(c, lines)
}

// RemoveInsumo deletes one line.
// DELETE /api/productos/:id/insumos/:idInsumo
func (h *ProductoHandler) RemoveInsumo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	idInsumo, ok := pathID(c, "idInsumo")
	if !ok {
		return
	}

	if err := h.svc.RemoveInsumo(c.Request.Context(), id, idInsumo); err != nil {
		fail(c, err)
		return
	}

	h.record(c, "producto", id, postgres.AuditActionUpdate, gin.H{"removed_insumo": idInsumo})
	respondMessage(c, "Insumo eliminado del producto")
}
