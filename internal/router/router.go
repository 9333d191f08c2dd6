package router

import (
	"context"
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/cache"
	"github.com/LilDeus06/trazabilidad-sub000/internal/config"
	"github.com/LilDeus06/trazabilidad-sub000/internal/handler"
	"github.com/LilDeus06/trazabilidad-sub000/internal/infra"
	"github.com/LilDeus06/trazabilidad-sub000/internal/middleware"
	"github.com/LilDeus06/trazabilidad-sub000/internal/repository"
	"github.com/LilDeus06/trazabilidad-sub000/internal/service"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storage infra.ObjectStorage, storageCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	perfilRepo := repository.NewPerfilRepository(db)
	permisoRepo := repository.NewPermisoRepository(db)
	fundoRepo := repository.NewFundoRepository(db)
	loteRepo := repository.NewLoteRepository(db)
	camionRepo := repository.NewCamionRepository(db)
	guiaRepo := repository.NewGuiaRepository(db)
	acopioRepo := repository.NewAcopioRepository(db)
	packingRepo := repository.NewPackingRepository(db)

	// ── Authorization core ───────────────────────────────────────────────────
	resolver := authz.NewResolver(permisoRepo)
	perfilCache := cache.NewPerfilCache(rdb, time.Duration(cfg.PerfilCacheTTLHours)*time.Hour)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(perfilRepo, resolver, perfilCache, cfg)
	usuarioSvc := service.NewUsuarioService(perfilRepo, permisoRepo, perfilCache)
	fundoSvc := service.NewFundoService(fundoRepo, resolver)
	loteSvc := service.NewLoteService(loteRepo, fundoRepo, resolver)
	camionSvc := service.NewCamionService(camionRepo, loteRepo, resolver)
	guiaSvc := service.NewGuiaService(guiaRepo, camionRepo, loteRepo, resolver)
	acopioSvc := service.NewAcopioService(acopioRepo, loteRepo, resolver)
	packingSvc := service.NewPackingService(packingRepo, loteRepo, resolver)
	exportSvc := service.NewExportService(camionRepo, guiaRepo, resolver)
	avatarSvc := service.NewAvatarService(perfilRepo, storage, perfilCache)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	fundosH := handler.NewFundosHandler(fundoSvc)
	lotesH := handler.NewLotesHandler(loteSvc)
	camionesH := handler.NewCamionesHandler(camionSvc)
	guiasH := handler.NewGuiasHandler(guiaSvc)
	acopioH := handler.NewAcopioHandler(acopioSvc)
	packingH := handler.NewPackingHandler(packingSvc)
	exportH := handler.NewExportHandler(exportSvc)
	avatarH := handler.NewAvatarHandler(avatarSvc)

	// Guards resolve the current rol from the perfil (cache first) so a role
	// change applies on the next request, not when the token expires. If the
	// perfil cannot be read the rol claimed in the token is used.
	currentRol := middleware.RolLookup(func(ctx context.Context, userID uuid.UUID) (string, bool) {
		if p := perfilCache.Get(ctx, userID); p != nil {
			return p.Rol, true
		}
		p, err := perfilRepo.FindByID(ctx, userID)
		if err != nil || p == nil {
			return "", false
		}
		perfilCache.Set(ctx, p)
		return p.Rol, true
	})

	// Per-módulo guards. The read/write/delete split follows the HTTP verb.
	guard := func(m authz.Modulo, a authz.Accion) gin.HandlerFunc {
		return middleware.RequireModulo(resolver, currentRol, m, a)
	}

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, storageCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/register", middleware.LoginRateLimiter(), authH.Register)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	r.GET("/v1/auth/me", jwtMW, authH.Me)

	v1 := r.Group("/v1", jwtMW)
	{
		usuarios := v1.Group("/usuarios")
		{
			usuarios.POST("", guard(authz.ModuloUsuarios, authz.AccionWrite), usuariosH.Crear)
			usuarios.GET("", guard(authz.ModuloUsuarios, authz.AccionRead), usuariosH.Listar)
			usuarios.PUT("/:id", guard(authz.ModuloUsuarios, authz.AccionWrite), usuariosH.Actualizar)
			usuarios.DELETE("/:id", guard(authz.ModuloUsuarios, authz.AccionDelete), usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", guard(authz.ModuloUsuarios, authz.AccionWrite), usuariosH.Reactivar)
			usuarios.GET("/:id/permisos", guard(authz.ModuloAdmin, authz.AccionRead), usuariosH.ObtenerPermisos)
			usuarios.PUT("/:id/permisos", guard(authz.ModuloAdmin, authz.AccionWrite), usuariosH.ReemplazarPermisos)
		}

		fundos := v1.Group("/fundos")
		{
			fundos.POST("", guard(authz.ModuloFundos, authz.AccionWrite), fundosH.Crear)
			fundos.GET("", guard(authz.ModuloFundos, authz.AccionRead), fundosH.Listar)
			fundos.GET("/:id", guard(authz.ModuloFundos, authz.AccionRead), fundosH.ObtenerPorID)
			fundos.PUT("/:id", guard(authz.ModuloFundos, authz.AccionWrite), fundosH.Actualizar)
			fundos.DELETE("/:id", guard(authz.ModuloFundos, authz.AccionDelete), fundosH.Desactivar)
		}

		lotes := v1.Group("/lotes")
		{
			lotes.POST("", guard(authz.ModuloLotes, authz.AccionWrite), lotesH.Crear)
			lotes.GET("", guard(authz.ModuloLotes, authz.AccionRead), lotesH.Listar)
			lotes.GET("/:id", guard(authz.ModuloLotes, authz.AccionRead), lotesH.ObtenerPorID)
			lotes.PUT("/:id", guard(authz.ModuloLotes, authz.AccionWrite), lotesH.Actualizar)
			lotes.DELETE("/:id", guard(authz.ModuloLotes, authz.AccionDelete), lotesH.Eliminar)
		}

		camiones := v1.Group("/camiones")
		{
			camiones.POST("", guard(authz.ModuloCamiones, authz.AccionWrite), camionesH.Crear)
			camiones.GET("", guard(authz.ModuloCamiones, authz.AccionRead), camionesH.Listar)
			camiones.GET("/:id", guard(authz.ModuloCamiones, authz.AccionRead), camionesH.ObtenerPorID)
			camiones.PUT("/:id", guard(authz.ModuloCamiones, authz.AccionWrite), camionesH.Actualizar)
			camiones.DELETE("/:id", guard(authz.ModuloCamiones, authz.AccionDelete), camionesH.Desactivar)
			camiones.PATCH("/:id/reactivar", guard(authz.ModuloCamiones, authz.AccionWrite), camionesH.Reactivar)
		}

		guias := v1.Group("/guias")
		{
			guias.POST("", guard(authz.ModuloGuias, authz.AccionWrite), guiasH.Crear)
			guias.GET("", guard(authz.ModuloGuias, authz.AccionRead), guiasH.Listar)
			guias.GET("/:id", guard(authz.ModuloGuias, authz.AccionRead), guiasH.ObtenerPorID)
			guias.GET("/:id/pdf", guard(authz.ModuloGuias, authz.AccionRead), guiasH.PDF)
			guias.DELETE("/:id", guard(authz.ModuloGuias, authz.AccionDelete), guiasH.Eliminar)
		}

		acopio := v1.Group("/acopio")
		{
			acopio.POST("/recepciones", guard(authz.ModuloAcopio, authz.AccionWrite), acopioH.CrearRecepcion)
			acopio.GET("/recepciones", guard(authz.ModuloAcopio, authz.AccionRead), acopioH.ListarRecepciones)
			acopio.PUT("/recepciones/:id", guard(authz.ModuloAcopio, authz.AccionWrite), acopioH.ActualizarRecepcion)
			acopio.DELETE("/recepciones/:id", guard(authz.ModuloAcopio, authz.AccionDelete), acopioH.EliminarRecepcion)

			acopio.POST("/pallets", guard(authz.ModuloAcopio, authz.AccionWrite), acopioH.CrearPallet)
			acopio.GET("/pallets", guard(authz.ModuloAcopio, authz.AccionRead), acopioH.ListarPallets)
			acopio.PATCH("/pallets/:id/despachar", guard(authz.ModuloAcopio, authz.AccionWrite), acopioH.DespacharPallet)
			acopio.GET("/pallets/:id/cargas", guard(authz.ModuloAcopio, authz.AccionRead), acopioH.ListarCargas)

			acopio.POST("/cargas", guard(authz.ModuloAcopio, authz.AccionWrite), acopioH.CrearCarga)
		}

		packing := v1.Group("/packing")
		{
			packing.POST("", guard(authz.ModuloPacking, authz.AccionWrite), packingH.Crear)
			packing.GET("", guard(authz.ModuloPacking, authz.AccionRead), packingH.Listar)
			packing.GET("/:id", guard(authz.ModuloPacking, authz.AccionRead), packingH.ObtenerPorID)
			packing.PUT("/:id", guard(authz.ModuloPacking, authz.AccionWrite), packingH.Actualizar)
			packing.DELETE("/:id", guard(authz.ModuloPacking, authz.AccionDelete), packingH.Eliminar)
		}
	}

	// Legacy-path surfaces consumed by the existing frontend.
	api := r.Group("/api", jwtMW)
	{
		api.GET("/camiones/export", guard(authz.ModuloCamiones, authz.AccionRead), exportH.Camiones)
		api.GET("/guias/export", guard(authz.ModuloGuias, authz.AccionRead), exportH.Guias)
		api.POST("/upload-avatar", avatarH.Subir)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
