// Package main is the entry point for the abarrote API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"abarrote/internal/core/tx"
	"abarrote/internal/domain/auth"
	"abarrote/internal/domain/catalog"
	"abarrote/internal/domain/document"
	"abarrote/internal/domain/register"
	v1 "abarrote/internal/infrastructure/http/v1"
	"abarrote/internal/infrastructure/http/v1/handlers"
	"abarrote/internal/infrastructure/storage/postgres"
	"abarrote/internal/infrastructure/storage/postgres/auth_repo"
	"abarrote/internal/infrastructure/storage/postgres/catalog_repo"
	"abarrote/internal/infrastructure/storage/postgres/document_repo"
	"abarrote/internal/infrastructure/storage/postgres/register_repo"
	"abarrote/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting abarrote server")

	if getEnv("APP_ENV", "development") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	poolCfg.MaxConns = int32(getEnvInt("DB_MAX_CONNS", int(poolCfg.MaxConns)))

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)
	var txManager tx.Manager = txm

	// --- Audit trail ---
	auditSvc, err := postgres.NewAuditService(txm)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}
	defer auditSvc.Close()

	// --- Auth ---
	jwtTTL := getEnvDuration("JWT_TTL", 24*time.Hour)
	tokenSvc := auth.NewTokenService(mustEnv("JWT_SECRET"), jwtTTL)
	authSvc := auth.NewService(auth_repo.NewUserRepo(txm), tokenSvc)

	// --- Repositories ---
	insumoRepo := catalog_repo.NewInsumoRepo(txm)
	productoRepo := catalog_repo.NewProductoRepo(txm)
	cadenaRepo := catalog_repo.NewCadenaRepo(txm)
	cajaRepo := catalog_repo.NewCajaRepo(txm)
	plataformaRepo := catalog_repo.NewPlataformaRepo(txm)
	clienteRepo := catalog_repo.NewClienteRepo(txm)
	categoriaRepo := catalog_repo.NewCategoriaRepo(txm)
	tipoProductoRepo := catalog_repo.NewTipoProductoRepo(txm)
	ventaRepo := document_repo.NewVentaRepo(txm)
	costoRepo := document_repo.NewCostoRepo(txm)
	stockInsumoRepo := register_repo.NewStockInsumoRepo(txm)
	stockProductoRepo := register_repo.NewStockProductoRepo(txm)

	// --- Services ---
	insumoSvc := catalog.NewInsumoService(insumoRepo, stockInsumoRepo, txManager)
	productoSvc := catalog.NewProductoService(productoRepo, txManager)
	cadenaSvc := catalog.NewCadenaService(cadenaRepo, txManager)
	cajaSvc := catalog.NewCajaService(cajaRepo)
	plataformaSvc := catalog.NewPlataformaService(plataformaRepo)
	clienteSvc := catalog.NewClienteService(clienteRepo)
	categoriaSvc := catalog.NewCategoriaService(categoriaRepo)
	tipoProductoSvc := catalog.NewTipoProductoService(tipoProductoRepo)
	ventaSvc := document.NewVentaService(ventaRepo)
	costoSvc := document.NewCostoService(costoRepo, txManager)
	stockSvc := register.NewStockService(stockInsumoRepo, stockProductoRepo)

	// --- Router ---
	base := &handlers.Base{Audit: auditSvc}
	router := v1.NewRouter(authSvc, pool, v1.Handlers{
		Auth:          handlers.NewAuthHandler(authSvc),
		Insumos:       handlers.NewInsumoHandler(base, insumoSvc),
		Productos:     handlers.NewProductoHandler(base, productoSvc),
		Cadenas:       handlers.NewCadenaHandler(base, cadenaSvc),
		Cajas:         handlers.NewCajaHandler(base, cajaSvc),
		Plataformas:   handlers.NewPlataformaHandler(base, plataformaSvc),
		Clientes:      handlers.NewClienteHandler(base, clienteSvc),
		Ventas:        handlers.NewVentaHandler(base, ventaSvc),
		Costos:        handlers.NewCostoHandler(base, costoSvc),
		Categorias:    handlers.NewCategoriaHandler(categoriaSvc),
		TiposProducto: handlers.NewTipoProductoHandler(tipoProductoSvc),
		Stock:         handlers.NewStockHandler(stockSvc),
		Auditoria:     handlers.NewAuditHandler(auditSvc),
	})

	// --- HTTP server ---
	port := getEnv("APP_PORT", "3000")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("http server listening", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("http server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("forced shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		fmt.Printf("required environment variable %s is not set\n", key)
		os.Exit(1)
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
