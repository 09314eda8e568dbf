package api

import (
	"fmt"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/salonms/backend/internal/api/handler"
	"github.com/salonms/backend/internal/api/middleware"
	"github.com/salonms/backend/internal/core/domain"
	"github.com/salonms/backend/internal/core/service"
	"github.com/salonms/backend/internal/core/token"
	"github.com/salonms/backend/internal/infrastructure/config"
	mongodb "github.com/salonms/backend/internal/infrastructure/db/mongo"
	redisdb "github.com/salonms/backend/internal/infrastructure/db/redis"
	"github.com/salonms/backend/internal/pkg/passwd"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// One lifecycle per role namespace, one shared codec and hasher.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("salon_auth"))

	// --- Shared auth primitives ---
	codec, err := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL, cfg.JWTSecretPrevious)
	if err != nil {
		return nil, err
	}
	hasher := passwd.NewHasher()
	throttle := redisdb.NewLoginThrottle(rdb)

	policy := middleware.NewPolicy(
		append(middleware.DefaultPublicPrefixes(), cfg.ExtraPublicPaths...),
		middleware.DefaultPolicyRules(),
	)
	e.Use(middleware.Gate(codec, policy))

	// --- Role namespaces ---
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleStaff, domain.RoleReception} {
		repo, err := mongodb.NewAccountRepository(db, role)
		if err != nil {
			return nil, fmt.Errorf("repository for %s: %w", role, err)
		}
		lifecycle := service.NewAccountLifecycle(repo, hasher, codec, role).WithThrottle(throttle)

		authHandler := handler.NewAuthHandler(lifecycle, codec, role)
		accountHandler := handler.NewAccountHandler(lifecycle)

		ns := "/api/" + strings.ToLower(string(role))

		auth := e.Group(ns + "/auth")
		auth.POST("/login", authHandler.Login)
		auth.GET("/validate", authHandler.Validate)
		auth.POST("/change-password", authHandler.ChangePassword)

		switch role {
		case domain.RoleAdmin:
			auth.POST("/init", authHandler.InitAdmin)
		case domain.RoleStaff:
			auth.GET("/check-status", authHandler.CheckStatus)
		}

		// Provisioning surface; the gate restricts it to ADMIN. The admin
		// namespace has no provisioning routes beyond the bootstrap init.
		if role != domain.RoleAdmin {
			group := e.Group(ns)
			group.POST("", accountHandler.Register)
			group.GET("/:id", accountHandler.Get)
			group.PATCH("/:id/status", accountHandler.SetStatus)
			group.DELETE("/:id", accountHandler.Delete)
		}
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	// liveness – is the process alive? readiness – are dependencies up?
	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/api/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
