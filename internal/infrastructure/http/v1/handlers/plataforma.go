package handlers

import (
	"github.com/gin-gonic/gin"

	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

// PlataformaHandler serves the sales platform CRUD family.
type PlataformaHandler struct {
	*Base
	svc *catalog.PlataformaService
}

// NewPlataformaHandler creates a platform handler.
func NewPlataformaHandler(base *Base, svc *catalog.PlataformaService) *PlataformaHandler {
	return &PlataformaHandler{Base: base, svc: svc}
}

// List returns platforms.
// GET /api/plataformas?status&search
func (h *PlataformaHandler) List(c *gin.Context) {
	filter := listFilter(c, 0)
	filter.Limit = 0

	result, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, result.Items)
}

// Get returns one platform.
// GET /api/plataformas/:id
func (h *PlataformaHandler) Get(c *gin.Context) {
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

// Create inserts a platform.
// POST /api/plataformas
func (h *PlataformaHandler) Create(c *gin.Context) {
	var in catalog.CreatePlataforma
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "plataforma", p.IDPlataforma, postgres.AuditActionCreate, p)
	respondCreated(c, p)
}

// Update applies a partial update.
// PUT /api/plataformas/:id
func (h *PlataformaHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch catalog.UpdatePlataforma
	if err := c.ShouldBindJSON(&patch); err != nil {
		failBinding(c, err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "plataforma", id, postgres.AuditActionUpdate, patch)
	respondOK(c, p)
}

// Delete marks the platform inactive.
// DELETE /api/plataformas/:id
func (h *PlataformaHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	h.record(c, "plataforma", id, postgres.AuditActionDelete, nil)
	respondMessage(c, "Plataforma eliminada correctamente")
}
