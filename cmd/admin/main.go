package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/lavka-market/lavka-backend/api/routes"
	"github.com/lavka-market/lavka-backend/internal/catalog"
	"github.com/lavka-market/lavka-backend/internal/orders"
	"github.com/lavka-market/lavka-backend/internal/users"
	"github.com/lavka-market/lavka-backend/pkg/config"
	"github.com/lavka-market/lavka-backend/pkg/db"
	"github.com/lavka-market/lavka-backend/pkg/logger"
	"github.com/lavka-market/lavka-backend/pkg/metrics"
	"github.com/lavka-market/lavka-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "admin"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.Admin.APIKey == "" {
		logg.Warn(context.Background(), "LAVKA_ADMIN_API_KEY is empty, all admin requests will be rejected")
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	conn := dbClient.DB()

	catalogAdmin, err := catalog.NewAdminService(catalog.NewRepository(conn), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog admin service", err)
		os.Exit(1)
	}

	ordersAdmin, err := orders.NewAdminService(orders.NewRepository(conn), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders admin service", err)
		os.Exit(1)
	}

	usersAdmin, err := users.NewAdminService(users.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create users admin service", err)
		os.Exit(1)
	}

	router := routes.NewAdminRouter(routes.AdminDeps{
		Config:      cfg,
		Logger:      logg,
		DB:          conn,
		Redis:       redisClient,
		HTTPMetrics: metrics.NewHTTPMetrics("admin"),
		Catalog:     catalogAdmin,
		Orders:      ordersAdmin,
		Users:       usersAdmin,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting admin server")

	server := &http.Server{Addr: addr, Handler: router}
	if err := runServer(ctx, logg, server); err != nil {
		logg.Error(ctx, "admin server stopped unexpectedly", err)
		os.Exit(1)
	}

	if err := multierr.Append(redisClient.Close(), dbClient.Close()); err != nil {
		logg.Error(ctx, "error during shutdown cleanup", err)
		os.Exit(1)
	}
	logg.Info(ctx, "admin server stopped")
}

func runServer(ctx context.Context, logg *logger.Logger, server *http.Server) error {
	notifyCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-notifyCtx.Done():
	}

	logg.Info(ctx, "shutting down admin server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
