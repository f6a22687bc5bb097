package handlers

import (
	"github.com/gin-gonic/gin"

	"abarrote/internal/domain/catalog"
)

// CategoriaHandler serves the supply category lookup.
type CategoriaHandler struct {
	svc *catalog.CategoriaService
}

// NewCategoriaHandler creates a category handler.
func NewCategoriaHandler(svc *catalog.CategoriaService) *CategoriaHandler {
	return &CategoriaHandler{svc: svc}
}

// List returns categories ordered by name.
// GET /api/categoria
func (h *CategoriaHandler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), listFilter(c, 0))
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, result.Items)
}

// Get returns one category.
// GET /api/categoria/:id
func (h *CategoriaHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cat, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, cat)
}

// Create inserts a category.
// POST /api/categoria
func (h *CategoriaHandler) Create(c *gin.Context) {
	var in catalog.CreateCategoria
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	cat, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	respondCreated(c, cat)
}

// Update renames a category.
// PUT /api/categoria/:id
func (h *CategoriaHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch catalog.UpdateCategoria
	if err := c.ShouldBindJSON(&patch); err != nil {
		failBinding(c, err)
		return
	}

	cat, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, cat)
}

// TipoProductoHandler serves the product type lookup.
type TipoProductoHandler struct {
	svc *catalog.TipoProductoService
}

// NewTipoProductoHandler creates a product type handler.
func NewTipoProductoHandler(svc *catalog.TipoProductoService) *TipoProductoHandler {
	return &TipoProductoHandler{svc: svc}
}

// List returns product types ordered by name.
// GET /api/tipo-producto
func (h *TipoProductoHandler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), listFilter(c, 0))
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, result.Items)
}

// Get returns one product type.
// GET /api/tipo-producto/:id
func (h *TipoProductoHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, tp)
}

// Create inserts a product type.
// POST /api/tipo-producto
func (h *TipoProductoHandler) Create(c *gin.Context) {
	var in catalog.CreateTipoProducto
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	tp, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	respondCreated(c, tp)
}

// Update renames a product type.
// PUT /api/tipo-producto/:id
func (h *TipoProductoHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch catalog.UpdateTipoProducto
	if err := c.ShouldBindJSON(&patch); err != nil {
		failBinding(c, err)
		return
	}

	tp, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, tp)
}
