package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fjod/go_pos/internal/cache"
	h "github.com/fjod/go_pos/internal/http"
	"github.com/fjod/go_pos/internal/repository"
	"github.com/fjod/go_pos/internal/service"
	"github.com/fjod/go_pos/pkg/logger"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	DB              repository.Credentials
}

func loadConfig() (*Config, error) {
	// Missing .env files are fine; config may come from the environment.
	_ = godotenv.Load()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		DB: repository.Credentials{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              dbPort,
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", "postgres"),
			DBName:            getEnv("DB_NAME", "pos"),
			MigrationsDirPath: getEnv("MIGRATIONS_PATH", "./internal/repository/migrations"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog := logger.Must(logger.New())
	defer func() { _ = zlog.Sync() }()

	repo, err := repository.NewRepository(&cfg.DB)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.RunMigrations(&cfg.DB); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}
	zlog.Info("database migrations completed")

	// The catalog cache is best-effort: when redis is down the service reads
	// straight from postgres.
	var catalog cache.CatalogCache
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if pingErr := redisClient.Ping(context.Background()).Err(); pingErr != nil {
		zlog.Warn("redis unavailable, product cache disabled", zap.Error(pingErr))
	} else {
		catalog = cache.NewRedisCache(redisClient)
	}
	defer redisClient.Close()

	checkoutSvc := service.NewCheckoutService(repo, catalog, zlog)
	transactionsSvc := service.NewTransactionsService(repo, zlog)
	reportsSvc := service.NewReportsService(repo)
	productsSvc := service.NewProductsService(repo, catalog, zlog)

	checkoutHandler := h.NewCheckoutHandler(checkoutSvc, cfg.RequestTimeout)
	transactionsHandler := h.NewTransactionsHandler(transactionsSvc, cfg.RequestTimeout)
	reportsHandler := h.NewReportsHandler(reportsSvc, cfg.RequestTimeout)
	productsHandler := h.NewProductsHandler(productsSvc, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.IdentityMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/checkout", checkoutHandler.Checkout)
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactionsHandler.List)
			r.Get("/{id}", transactionsHandler.Detail)
			r.Delete("/{id}", transactionsHandler.Delete)
		})
		r.Get("/products", productsHandler.List)
		r.Get("/reports/low-stock", reportsHandler.LowStock)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("pos server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
