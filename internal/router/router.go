package router

import (
	"time"

	"inventario/internal/config"
	"inventario/internal/handler"
	"inventario/internal/infra"
	"inventario/internal/middleware"
	"inventario/internal/repository"
	"inventario/internal/service"
	"inventario/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb may be nil: stock locks fall back to in-process, the price cache is
// skipped and report emails answer 503.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	var (
		locker service.StockLocker = infra.NewLocalLocker()
		cache  service.PrecioCache
		emails service.EmailEnqueuer
	)
	if rdb != nil {
		locker = infra.NewRedisLocker(rdb)
		cache = infra.NewPrecioCache(rdb)
		emails = worker.NewDispatcher(rdb)
	}
	loc := cfg.Location()

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	familiaRepo := repository.NewFamiliaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	precioRepo := repository.NewPrecioRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	resumenRepo := repository.NewResumenRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	catalogoSvc := service.NewCatalogoService(familiaRepo, productoRepo)
	inventarioSvc := service.NewInventarioService(inventarioRepo, movimientoRepo, productoRepo, locker, loc)
	precioSvc := service.NewPrecioService(precioRepo, productoRepo, cache)
	ventaSvc := service.NewVentaService(ventaRepo, precioRepo, inventarioRepo, movimientoRepo, resumenRepo, locker, loc)
	reporteSvc := service.NewReporteService(service.ReporteDeps{
		Usuarios:          usuarioRepo,
		Familias:          familiaRepo,
		Productos:         productoRepo,
		Inventarios:       inventarioRepo,
		Movimientos:       movimientoRepo,
		Emails:            emails,
		ExportPath:        cfg.ExportPath,
		LowStockThreshold: cfg.LowStockThreshold,
		Location:          loc,
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	preciosH := handler.NewPreciosHandler(precioSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/api/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes
	api := r.Group("/api", middleware.JWTAuth(cfg.JWTSecret))
	admin := middleware.RequireAdmin()
	{
		api.GET("/me", authH.Me)

		api.GET("/familias", catalogoH.ListarFamilias)
		api.POST("/familias", admin, catalogoH.CrearFamilia)
		api.GET("/productos", catalogoH.ListarProductos)
		api.POST("/productos", admin, catalogoH.CrearProducto)
		api.GET("/presentaciones/:product_id", catalogoH.ListarPresentaciones)
		api.POST("/presentaciones", admin, catalogoH.CrearPresentacion)

		api.GET("/inventario", inventarioH.Listar)
		api.POST("/inventario", inventarioH.Crear)
		api.GET("/inventario/:presentation_id", inventarioH.Stock)
		api.POST("/movimientos", inventarioH.RegistrarMovimiento)
		api.GET("/movimientos", inventarioH.ListarMovimientos)
		api.POST("/entradas-agrupadas", inventarioH.EntradasAgrupadas)

		api.GET("/precios", preciosH.Listar)
		api.GET("/precios/:presentation_id", preciosH.Obtener)
		api.POST("/precios", preciosH.Establecer)

		api.POST("/ventas", ventasH.RegistrarVenta)
		api.GET("/ventas", ventasH.ListarVentas)
		api.GET("/ventas/resumen", ventasH.Resumen)

		api.GET("/dashboard", reportesH.Dashboard)
		api.GET("/exportar/inventario", reportesH.ExportarInventario)
		api.POST("/exportar/inventario/email", reportesH.EnviarInventario)

		usuarios := api.Group("/usuarios", admin)
		{
			usuarios.GET("", usuariosH.Listar)
			usuarios.POST("", usuariosH.Crear)
		}
	}

	// Swagger UI outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
