package handlers

import (
	"github.com/gin-gonic/gin"

	"abarrote/internal/domain/document"
	"abarrote/internal/infrastructure/storage/postgres"
)

// CostoHandler serves the cost record CRUD family, its per-product
// listing and its supply line sub-resource.
type CostoHandler struct {
	*Base
	svc *document.CostoService
}

// NewCostoHandler creates a cost record handler.
func NewCostoHandler(base *Base, svc *document.CostoService) *CostoHandler {
	return &CostoHandler{Base: base, svc: svc}
}

// List returns every cost record.
// GET /api/costos
func (h *CostoHandler) List(c *gin.Context) {
	costos, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, costos)
}

// Get returns one cost record.
// GET /api/costos/:id
func (h *CostoHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	costo, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, costo)
}

// ListByProducto returns the cost records of one product.
// GET /api/costos/producto/:idProducto
func (h *CostoHandler) ListByProducto(c *gin.Context) {
	idProducto, ok := pathID(c, "idProducto")
	if !ok {
		return
	}

	costos, err := h.svc.ListByProducto(c.Request.Context(), idProducto)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, costos)
}

// Create inserts a cost record.
// POST /api/costos
func (h *CostoHandler) Create(c *gin.Context) {
	var in document.CreateCosto
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	costo, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "costo", costo.IDCosto, postgres.AuditActionCreate, costo)
	respondCreated(c, costo)
}

// Update applies a partial update.
// PUT /api/costos/:id
func (h *CostoHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch document.UpdateCosto
	if err := c.ShouldBindJSON(&patch); err != nil {
		failBinding(c, err)
		return
	}

	costo, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "costo", id, postgres.AuditActionUpdate, patch)
	respondOK(c, costo)
}

// Delete removes the cost record permanently.
// DELETE /api/costos/:id
func (h *CostoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	h.record(c, "costo", id, postgres.AuditActionDelete, nil)
	respondMessage(c, "Costo eliminado correctamente")
}

// ListInsumos returns the record's lines.
// GET /api/costos/:id/insumos
func (h *CostoHandler) ListInsumos(c *gin.Context) {
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
// POST /api/costos/:id/insumos
func (h *CostoHandler) AddInsumo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var line document.CostoBOMLine
	if err := c.ShouldBindJSON(&line); err != nil {
		failBinding(c, err)
		return
	}

	saved, err := h.svc.AddInsumo(c.Request.Context(), id, line)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "costo", id, postgres.AuditActionUpdate, line)
	respondCreated(c, saved)
}

type replaceCostoInsumosBody struct {
	Insumos []document.CostoBOMLine `json:"insumos" binding:"required"`
}

// ReplaceInsumos swaps the whole line set.
// PUT /api/costos/:id/insumos
func (h *CostoHandler) ReplaceInsumos(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body replaceCostoInsumosBody
	if err := c.ShouldBindJSON(&body); err != nil {
		failBinding(c, err)
		return
	}

	lines, err := h.svc.ReplaceInsumos(c.Request.Context(), id, body.Insumos)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "costo", id, postgres.AuditActionUpdate, body)
	respondOK(c, lines)
}

// RemoveInsumo deletes one line.
// DELETE /api/costos/:id/insumos/:idInsumo
func (h *CostoHandler) RemoveInsumo(c *gin.Context) {
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

	h.record(c, "costo", id, postgres.AuditActionUpdate, gin.H{"removed_insumo": idInsumo})
	respondMessage(c, "Insumo eliminado del costo")
}
