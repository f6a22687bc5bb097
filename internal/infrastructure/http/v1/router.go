// Package v1 assembles the HTTP API: middleware chain, route families
// and the 404 fallback.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"abarrote/internal/domain/auth"
	"abarrote/internal/infrastructure/http/v1/handlers"
	"abarrote/internal/infrastructure/http/v1/middleware"
)

// Handlers gathers everything the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Insumos      *handlers.InsumoHandler
	Productos    *handlers.ProductoHandler
	Cadenas      *handlers.CadenaHandler
	Cajas        *handlers.CajaHandler
	Plataformas  *handlers.PlataformaHandler
	Clientes     *handlers.ClienteHandler
	Ventas       *handlers.VentaHandler
	Costos       *handlers.CostoHandler
	Categorias   *handlers.CategoriaHandler
	TiposProducto *handlers.TipoProductoHandler
	Stock        *handlers.StockHandler
	Auditoria    *handlers.AuditHandler
}

// NewRouter builds the gin engine. Every route except the health
// probes and the auth endpoints sits behind the bearer token gate.
func NewRouter(authSvc *auth.Service, db handlers.Pinger, h Handlers) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health)
	router.GET("/health/ready", handlers.Ready(db))

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(authSvc))

	insumos := protected.Group("/insumos")
	{
		insumos.GET("", h.Insumos.List)
		insumos.GET("/:id", h.Insumos.Get)
		insumos.POST("", h.Insumos.Create)
		insumos.PUT("/:id", h.Insumos.Update)
		insumos.DELETE("/:id", h.Insumos.Delete)
	}

	productos := protected.Group("/productos")
	{
		productos.GET("", h.Productos.List)
		productos.GET("/:id", h.Productos.Get)
		productos.POST("", h.Productos.Create)
		productos.PUT("/:id", h.Productos.Update)
		productos.DELETE("/:id", h.Productos.Delete)

		productos.PATCH("/:id/publicado-ml", h.Productos.SetPublicadoML)
		productos.PATCH("/:id/toggle-publicado-ml", h.Productos.TogglePublicadoML)

		productos.GET("/:id/insumos", h.Productos.ListInsumos)
		productos.POST("/:id/insumos", h.Productos.AddInsumo)
		productos.PUT("/:id/insumos", h.Productos.ReplaceInsumos)
		productos.DELETE("/:id/insumos/:idInsumo", h.Productos.RemoveInsumo)
	}

	cadenas := protected.Group("/cadenas")
	{
		cadenas.GET("", h.Cadenas.List)
		cadenas.GET("/:id", h.Cadenas.Get)
		cadenas.POST("", h.Cadenas.Create)
		cadenas.PUT("/:id", h.Cadenas.Update)
		cadenas.DELETE("/:id", h.Cadenas.Delete)

		cadenas.GET("/:id/insumos", h.Cadenas.ListInsumos)
		cadenas.POST("/:id/insumos", h.Cadenas.AddInsumo)
		cadenas.PUT("/:id/insumos", h.Cadenas.ReplaceInsumos)
		cadenas.DELETE("/:id/insumos/:idInsumo", h.Cadenas.RemoveInsumo)
	}

	cajas := protected.Group("/cajas")
	{
		cajas.GET("", h.Cajas.List)
		cajas.GET("/:id", h.Cajas.Get)
		cajas.POST("", h.Cajas.Create)
		cajas.PUT("/:id", h.Cajas.Update)
		cajas.DELETE("/:id", h.Cajas.Delete)
	}

	plataformas := protected.Group("/plataformas")
	{
		plataformas.GET("", h.Plataformas.List)
		plataformas.GET("/:id", h.Plataformas.Get)
		plataformas.POST("", h.Plataformas.Create)
		plataformas.PUT("/:id", h.Plataformas.Update)
		plataformas.DELETE("/:id", h.Plataformas.Delete)
	}

	clientes := protected.Group("/clientes")
	{
		clientes.GET("", h.Clientes.List)
		clientes.GET("/:id", h.Clientes.Get)
		clientes.POST("", h.Clientes.Create)
		clientes.PUT("/:id", h.Clientes.Update)
	}

	ventas := protected.Group("/ventas")
	{
		ventas.GET("", h.Ventas.List)
		ventas.GET("/:id", h.Ventas.Get)
		ventas.POST("", h.Ventas.Create)
		ventas.PUT("/:id", h.Ventas.Update)
	}

	costos := protected.Group("/costos")
	{
		costos.GET("", h.Costos.List)
		costos.GET("/producto/:idProducto", h.Costos.ListByProducto)
		costos.GET("/:id", h.Costos.Get)
		costos.POST("", h.Costos.Create)
		costos.PUT("/:id", h.Costos.Update)
		costos.DELETE("/:id", h.Costos.Delete)

		costos.GET("/:id/insumos", h.Costos.ListInsumos)
		costos.POST("/:id/insumos", h.Costos.AddInsumo)
		costos.PUT("/:id/insumos", h.Costos.ReplaceInsumos)
		costos.DELETE("/:id/insumos/:idInsumo", h.Costos.RemoveInsumo)
	}

	categoria := protected.Group("/categoria")
	{
		categoria.GET("", h.Categorias.List)
		categoria.GET("/:id", h.Categorias.Get)
		categoria.POST("", h.Categorias.Create)
		categoria.PUT("/:id", h.Categorias.Update)
	}

	tipoProducto := protected.Group("/tipo-producto")
	{
		tipoProducto.GET("", h.TiposProducto.List)
		tipoProducto.GET("/:id", h.TiposProducto.Get)
		tipoProducto.POST("", h.TiposProducto.Create)
		tipoProducto.PUT("/:id", h.TiposProducto.Update)
	}

	stockInsumos := protected.Group("/stock-insumos")
	{
		stockInsumos.GET("", h.Stock.ListInsumos)
		stockInsumos.GET("/:idInsumo", h.Stock.GetInsumo)
		stockInsumos.POST("", h.Stock.UpsertInsumo)
		stockInsumos.PATCH("/:idInsumo", h.Stock.SetInsumoCantidad)
	}

	stockProductos := protected.Group("/stock-productos")
	{
		stockProductos.GET("", h.Stock.ListProductos)
		stockProductos.GET("/:idProducto", h.Stock.GetProducto)
		stockProductos.POST("", h.Stock.UpsertProducto)
		stockProductos.PATCH("/:idProducto", h.Stock.AddProductoCantidad)
	}

	protected.GET("/auditoria/:entidad/:id", h.Auditoria.List)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Ruta no encontrada",
		})
	})

	return router
}
