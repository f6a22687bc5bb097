package handlers

import (
	"github.com/gin-gonic/gin"

	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

// CadenaHandler serves the bundle CRUD family and its line
// sub-resource.
type CadenaHandler struct {
	*Base
	svc *catalog.CadenaService
}

// NewCadenaHandler creates a bundle handler.
func NewCadenaHandler(base *Base, svc *catalog.CadenaService) *CadenaHandler {
	return &CadenaHandler{Base: base, svc: svc}
}

// List returns bundles with derived prices.
// GET /api/cadenas?status&search
func (h *CadenaHandler) List(c *gin.Context) {
	filter := listFilter(c, 0)
	filter.Limit = 0 // the bundle catalog is small, no paging

	result, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, result.Items)
}

// Get returns one bundle.
// GET /api/cadenas/:id
func (h *CadenaHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cad, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, cad)
}

// Create inserts a bundle.
// POST /api/cadenas
func (h *CadenaHandler) Create(c *gin.Context) {
	var in catalog.CreateCadena
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	cad, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "cadena", cad.IDCadena, postgres.AuditActionCreate, cad)
	respondCreated(c, cad)
}

// Update applies a partial update, replacing lines when present.
// PUT /api/cadenas/:id
func (h *CadenaHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch catalog.UpdateCadena
	if err := c.ShouldBindJSON(&patch); err != nil {
		failBinding(c, err)
		return
	}

	cad, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "cadena", id, postgres.AuditActionUpdate, patch)
	respondOK(c, cad)
}

// Delete marks the bundle inactive.
// DELETE /api/cadenas/:id
func (h *CadenaHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	h.record(c, "cadena", id, postgres.AuditActionDelete, nil)
	respondMessage(c, "Cadena eliminada correctamente")
}

// ListInsumos returns the bundle's lines.
// GET /api/cadenas/:id/insumos
func (h *CadenaHandler) ListInsumos(c *gin.Context) {
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
// POST /api/cadenas/:id/insumos
func (h *CadenaHandler) AddInsumo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var line catalog.CadenaBOMLine
	if err := c.ShouldBindJSON(&line); err != nil {
		failBinding(c, err)
		return
	}

	saved, err := h.svc.AddInsumo(c.Request.Context(), id, line)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "cadena", id, postgres.AuditActionUpdate, line)
	respondCreated(c, saved)
}

type replaceCadenaInsumosBody struct {
	Insumos []catalog.CadenaBOMLine `json:"insumos" binding:"required"`
}

// ReplaceInsumos swaps the whole line set.
// PUT /api/cadenas/:id/insumos
func (h *CadenaHandler) ReplaceInsumos(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body replaceCadenaInsumosBody
	if err := c.ShouldBindJSON(&body); err != nil {
		failBinding(c, err)
		return
	}

	lines, err := h.svc.ReplaceInsumos(c.Request.Context(), id, body.Insumos)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "cadena", id, postgres.AuditActionUpdate, body)
	respondOK(c, lines)
}

// RemoveInsumo deletes one line.
// DELETE /api/cadenas/:id/insumos/:idInsumo
func (h *CadenaHandler) RemoveInsumo(c *gin.Context) {
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

	h.record(c, "cadena", id, postgres.AuditActionUpdate, gin.H{"removed_insumo": idInsumo})
	respondMessage(c, "Insumo eliminado de la cadena")
}
