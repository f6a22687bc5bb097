package handlers

import (
	"github.com/gin-gonic/gin"

	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

// ClienteHandler serves the client CRUD family.
type ClienteHandler struct {
	*Base
	svc *catalog.ClienteService
}

// NewClienteHandler creates a client handler.
func NewClienteHandler(base *Base, svc *catalog.ClienteService) *ClienteHandler {
	return &ClienteHandler{Base: base, svc: svc}
}

// List returns clients ordered by name.
// GET /api/clientes
func (h *ClienteHandler) List(c *gin.Context) {
	filter := listFilter(c, 0)
	filter.Limit = 0

	result, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, result.Items)
}

// Get returns one client.
// GET /api/clientes/:id
func (h *ClienteHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cli, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, cli)
}

// Create inserts a client; the name must be unused.
// POST /api/clientes
func (h *ClienteHandler) Create(c *gin.Context) {
	var in catalog.CreateCliente
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	cli, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "cliente", cli.IDCliente, postgres.AuditActionCreate, cli)
	respondCreated(c, cli)
}

// Update renames a client.
// PUT /api/clientes/:id
func (h *ClienteHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch catalog.UpdateCliente
	if err := c.ShouldBindJSON(&patch); err != nil {
		failBinding(c, err)
		return
	}

	cli, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, "cliente", id, postgres.AuditActionUpdate, patch)
	respondOK(c, cli)
}
