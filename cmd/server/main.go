package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"kanban_backend/internal/app/di"
	"kanban_backend/internal/app/router"
	authadapters "kanban_backend/internal/feature/auth/adapters"
	authentity "kanban_backend/internal/feature/auth/domain/entity"
	authhandler "kanban_backend/internal/feature/auth/transport/handler"
	authusecase "kanban_backend/internal/feature/auth/usecase"
	boardadapters "kanban_backend/internal/feature/board/adapters"
	boardentity "kanban_backend/internal/feature/board/domain/entity"
	boardhandler "kanban_backend/internal/feature/board/transport/handler"
	boardusecase "kanban_backend/internal/feature/board/usecase"
	infradb "kanban_backend/internal/platform/db"
	platformhandler "kanban_backend/internal/platform/http/handler"
	jwtmw "kanban_backend/internal/platform/jwt"
	infraredis "kanban_backend/internal/platform/redis"
	"kanban_backend/internal/platform/storage"
	"kanban_backend/internal/shared/ratelimiter"
)

const defaultLoginRateLimit = 10

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()
	if os.Getenv("RUN_MIGRATIONS") != "false" {
		if err := infradb.Migrate(db, &authentity.User{}, &boardentity.Column{}, &boardentity.Task{}); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
	}

	// Redis
	var rdb *redisv9.Client
	if rcfg := infraredis.LoadConfigFromEnv(); rcfg.Enabled() {
		tmp, err := infraredis.NewRedisClient(context.Background(), rcfg)
		if err != nil {
			slog.Warn("Redis unavailable, running without cache")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	avatars, err := storage.NewLocalStorage(uploadDir, storage.DefaultURLPrefix)
	if err != nil {
		slog.Error("failed to prepare upload storage", "error", err)
		os.Exit(1)
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	columnRepo := di.NewColumnRepository(rdb, db)
	taskRepo := boardadapters.NewTaskRepository(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(secret, jwtmw.LoadExpirationFromEnv()), avatars, columnRepo)
	if provider := di.NewGoogleProvider(); provider != nil {
		authUC = authUC.WithGoogle(provider, di.NewStateStore(rdb))
	} else {
		slog.Info("Google sign-in disabled")
	}
	columnUC := boardusecase.NewColumnUsecase(columnRepo)
	taskUC := boardusecase.NewTaskUsecase(taskRepo, columnRepo)

	// Handler
	r := router.NewRouter(router.Config{
		FrontendURL:     frontendURL,
		UploadDir:       avatars.Dir(),
		UploadURLPrefix: avatars.URLPrefix(),
		TrustedProxies:  trustedProxies(),
		LoginLimiter:    ratelimiter.NewRateLimiter(loginRateLimit(), time.Minute),
	}, router.Handlers{
		Health:  platformhandler.NewHealthHandler(sqlDB),
		Auth:    authhandler.NewAuthHandler(authUC, frontendURL),
		Columns: boardhandler.NewColumnHandler(columnUC),
		Tasks:   boardhandler.NewTaskHandler(taskUC),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

// loginRateLimit reads LOGIN_RATE_LIMIT, the login attempts allowed per IP per minute.
func loginRateLimit() int {
	raw := os.Getenv("LOGIN_RATE_LIMIT")
	if raw == "" {
		return defaultLoginRateLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid LOGIN_RATE_LIMIT, using default", "value", raw, "default", defaultLoginRateLimit)
		return defaultLoginRateLimit
	}
	return n
}

// trustedProxies reads TRUSTED_PROXIES, a comma-separated list of proxy IPs or CIDRs.
func trustedProxies() []string {
	var out []string
	for _, p := range strings.Split(os.Getenv("TRUSTED_PROXIES"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
