// Package router mounts every HTTP route of the service.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "kanban_backend/internal/feature/auth/transport/handler"
	boardhandler "kanban_backend/internal/feature/board/transport/handler"
	platformhandler "kanban_backend/internal/platform/http/handler"
	jwtmw "kanban_backend/internal/platform/jwt"
	"kanban_backend/internal/platform/storage"
	"kanban_backend/internal/shared/ratelimiter"
)

// maxUploadBody caps register and profile requests: one avatar plus the form fields.
const maxUploadBody = storage.MaxFileSize + 1<<20

// Config holds the router's non-handler settings.
type Config struct {
	// FrontendURL is the only origin allowed by CORS.
	FrontendURL string
	// UploadDir is served read-only under UploadURLPrefix.
	UploadDir       string
	UploadURLPrefix string
	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is believed.
	// Nil trusts none, so clients are keyed by their socket address.
	TrustedProxies []string
	// LoginLimiter throttles POST /api/auth/login per client IP. Nil disables throttling.
	LoginLimiter *ratelimiter.RateLimiter
}

// Handlers groups the feature handlers.
type Handlers struct {
	Health  *platformhandler.HealthHandler
	Auth    *authhandler.AuthHandler
	Columns *boardhandler.ColumnHandler
	Tasks   *boardhandler.TaskHandler
}

// NewRouter builds the gin engine.
func NewRouter(cfg Config, h Handlers) *gin.Engine {
	r := gin.Default()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		slog.Error("invalid trusted proxies, trusting none", "proxies", cfg.TrustedProxies, "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// No authentication required
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)
	if cfg.UploadDir != "" {
		r.Static(cfg.UploadURLPrefix, cfg.UploadDir)
	}

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", limitBody(maxUploadBody), h.Auth.Register)
		if cfg.LoginLimiter != nil {
			auth.POST("/login", ratelimiter.Middleware(cfg.LoginLimiter), h.Auth.Login)
		} else {
			auth.POST("/login", h.Auth.Login)
		}
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}

	// Routes below require a bearer token
	protected := api.Group("")
	protected.Use(jwtmw.AuthRequired())
	{
		protected.GET("/auth/me", h.Auth.Me)
		protected.PUT("/auth/profile", limitBody(maxUploadBody), h.Auth.UpdateProfile)
		protected.PUT("/auth/password", h.Auth.ChangePassword)
		protected.DELETE("/auth/account", h.Auth.DeleteAccount)

		protected.GET("/columns", h.Columns.List)
		protected.POST("/columns", h.Columns.Create)
		protected.POST("/columns/reorder", h.Columns.Reorder)
		protected.PUT("/columns/:id", h.Columns.Update)
		protected.DELETE("/columns/:id", h.Columns.Delete)

		protected.GET("/tasks", h.Tasks.List)
		protected.GET("/tasks/column/:id", h.Tasks.ListByColumn)
		protected.POST("/tasks", h.Tasks.Create)
		protected.POST("/tasks/move", h.Tasks.Move)
		protected.PUT("/tasks/:id", h.Tasks.Update)
		protected.DELETE("/tasks/:id", h.Tasks.Delete)

		protected.GET("/analytics", h.Tasks.Analytics)
	}

	return r
}

// limitBody makes reads past n bytes of the request body fail, which fails binding.
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
