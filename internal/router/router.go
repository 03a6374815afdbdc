package router

import (
	"time"

	"github.com/MatyCastillo/cashdesk-webapp/internal/config"
	"github.com/MatyCastillo/cashdesk-webapp/internal/handler"
	"github.com/MatyCastillo/cashdesk-webapp/internal/middleware"
	"github.com/MatyCastillo/cashdesk-webapp/internal/repository"
	"github.com/MatyCastillo/cashdesk-webapp/internal/service"
	"github.com/MatyCastillo/cashdesk-webapp/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine together
// with the payment service (the composition root hands it to the worker pool).
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, service.PaymentService) {
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
	userRepo := repository.NewUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)
	authSvc := service.NewAuthService(userRepo, cfg)
	userSvc := service.NewUserService(userRepo)
	pagoSvc := service.NewPaymentService(paymentRepo, rdb, dispatcher, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	pagosH := handler.NewPaymentsHandler(pagoSvc, cfg)

	// ── Routes ───────────────────────────────────────────────────────────────
	api := r.Group("/api/v1")

	// Public
	api.GET("/status", handler.Status(db, rdb, pagoSvc))
	api.POST("/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	pagos := api.Group("/pagos", jwtMW, middleware.RequireRole("admin", "cajero"))
	{
		pagos.POST("", pagosH.Crear)
		pagos.GET("", pagosH.Listar)
		pagos.DELETE("/:id", pagosH.Eliminar)
		pagos.GET("/dates", pagosH.Fechas)
		pagos.GET("/download/:date", pagosH.Descargar)
		pagos.GET("/reporte/:date", pagosH.Reporte)
	}

	users := api.Group("/users", jwtMW, middleware.RequireRole("admin"))
	{
		users.POST("", usersH.Crear)
		users.GET("", usersH.Listar)
		users.GET("/check-username", usersH.CheckUsername)
	}

	return r, pagoSvc
}
