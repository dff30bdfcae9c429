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
	"github.com/lavka-market/lavka-backend/internal/auth"
	"github.com/lavka-market/lavka-backend/internal/cart"
	"github.com/lavka-market/lavka-backend/internal/catalog"
	"github.com/lavka-market/lavka-backend/internal/checkout"
	"github.com/lavka-market/lavka-backend/internal/likes"
	"github.com/lavka-market/lavka-backend/internal/mailer"
	"github.com/lavka-market/lavka-backend/internal/orders"
	"github.com/lavka-market/lavka-backend/internal/users"
	"github.com/lavka-market/lavka-backend/pkg/config"
	"github.com/lavka-market/lavka-backend/pkg/db"
	"github.com/lavka-market/lavka-backend/pkg/logger"
	"github.com/lavka-market/lavka-backend/pkg/metrics"
	"github.com/lavka-market/lavka-backend/pkg/migrate"
	"github.com/lavka-market/lavka-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	mailerClient, err := mailer.New(cfg.Mail, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create mailer", err)
		os.Exit(1)
	}

	conn := dbClient.DB()

	authService, err := auth.NewService(auth.ServiceParams{
		Tokens:    auth.NewRepository(conn),
		Users:     users.NewRepository(conn),
		Limiter:   redisClient,
		Mailer:    mailerClient,
		JWTConfig: cfg.JWT,
		MagicLink: cfg.MagicLink,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewRepository(conn), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	fees, err := checkout.NewFees(cfg.Delivery)
	if err != nil {
		logg.Error(context.Background(), "invalid delivery fee config", err)
		os.Exit(1)
	}
	checkoutService, err := checkout.NewService(
		dbClient,
		cart.NewRepository(conn),
		catalog.NewRepository(conn),
		orders.NewRepository(conn),
		fees,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepository(conn), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	likesService, err := likes.NewService(likes.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create likes service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	router := routes.NewPublicRouter(routes.PublicDeps{
		Config:      cfg,
		Logger:      logg,
		DB:          conn,
		Redis:       redisClient,
		HTTPMetrics: metrics.NewHTTPMetrics("api"),
		Auth:        authService,
		Catalog:     catalogService,
		Cart:        cartService,
		Checkout:    checkoutService,
		Orders:      ordersService,
		Likes:       likesService,
		Users:       usersService,
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
	logg.Info(ctx, "starting api server")

	server := &http.Server{Addr: addr, Handler: router}
	if err := runServer(ctx, logg, server); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}

	if err := multierr.Append(redisClient.Close(), dbClient.Close()); err != nil {
		logg.Error(ctx, "error during shutdown cleanup", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
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

	logg.Info(ctx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
