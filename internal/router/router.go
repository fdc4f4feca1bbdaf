package router

import (
	"time"

	"github.com/JhoonerO/TuckFlow/internal/config"
	"github.com/JhoonerO/TuckFlow/internal/handler"
	"github.com/JhoonerO/TuckFlow/internal/middleware"
	"github.com/JhoonerO/TuckFlow/internal/repository"
	"github.com/JhoonerO/TuckFlow/internal/service"
	"github.com/JhoonerO/TuckFlow/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps bundles the external resources the router needs to assemble the app.
type Deps struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Dispatcher *worker.Dispatcher
	Config     *config.Config
}

// New builds the gin engine: middleware chain, repositories, services and
// route registration. This is the composition root — nothing else wires
// concrete implementations together.
func New(deps Deps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(300, time.Minute))

	// Repositories
	productoRepo := repository.NewProductoRepository(deps.DB)
	movimientoRepo := repository.NewMovimientoStockRepository(deps.DB)
	ventaRepo := repository.NewVentaRepository(deps.DB)
	clienteRepo := repository.NewClienteRepository(deps.DB)
	perfilRepo := repository.NewPerfilRepository(deps.DB)

	// Services
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoRepo)
	productoSvc := service.NewProductoService(productoRepo, inventarioSvc)
	ventaSvc := service.NewVentaService(
		ventaRepo,
		productoRepo,
		perfilRepo,
		inventarioSvc,
		deps.Dispatcher,
		deps.Redis,
		deps.Config.NegocioDefault,
	)
	clienteSvc := service.NewClienteService(clienteRepo)
	perfilSvc := service.NewPerfilService(perfilRepo)

	// Handlers
	productosH := handler.NewProductosHandler(productoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	perfilH := handler.NewPerfilHandler(perfilSvc)

	// Public
	r.GET("/health", handler.Health(deps.DB, deps.Redis))
	if deps.Config.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Authenticated API
	v1 := r.Group("/v1")
	v1.Use(middleware.JWTAuth(deps.Config.JWTSecret))
	{
		productos := v1.Group("/productos")
		{
			productos.POST("", productosH.Crear)
			productos.GET("", productosH.Listar)
			productos.GET("/:id", productosH.ObtenerPorID)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Desactivar)
			productos.POST("/:id/reactivar", productosH.Reactivar)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.POST("", ventasH.RegistrarVenta)
			ventas.GET("", ventasH.ListarVentas)
			ventas.GET("/:id/recibo", ventasH.ObtenerRecibo)
		}

		inventario := v1.Group("/inventario")
		{
			inventario.GET("/movimientos", inventarioH.ListarMovimientos)
			inventario.GET("/productos/:id/reconciliacion", inventarioH.ReconciliarProducto)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		perfil := v1.Group("/perfil")
		{
			perfil.GET("", perfilH.Obtener)
			perfil.PUT("", perfilH.Actualizar)
		}
	}

	return r
}
