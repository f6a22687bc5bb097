package handlers

import (
	"github.com/gin-gonic/gin"

	"abarrote/internal/domain/document"
	"abarrote/internal/infrastructure/storage/postgres"
)

// VentaHandler serves the sale CRUD family.
type VentaHandler struct {
	*Base
	svc *document.VentaService
}

// NewVentaHandler creates a sale handler.
func NewVentaHandler(base *Base, svc *document.VentaService) *VentaHandler {
	return &VentaHandler{Base: base, svc: svc}
}

// List returns sales, newest first.
// GET /api/ventas
func (h *VentaHandler) List(c *gin.Context) {
	ventas, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, ventas)
}

// Get returns one sale.
// GET /api/ventas/:id
func (h *VentaHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	v, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, v)
}

// Create records a sale. A missing platform or client comes back as a
// 400, not a server error.
// POST /api/ventas
func (h *VentaHandler) Create(c *gin.Context) {
	var in document.CreateVenta
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	v, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "venta", v.IDVenta, postgres.AuditActionCreate, v)
	respondCreated(c, v)
}

// Update applies a partial update.
// PUT /api/ventas/:id
func (h *VentaHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch document.UpdateVenta
	if err := c.ShouldBindJSON(&patch); err != nil {
		failBinding(c, err)
		return
	}

	v, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "venta", id, postgres.AuditActionUpdate, patch)
	respondOK(c, v)
}
