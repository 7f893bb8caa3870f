package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-site/internal/config"
	"restaurant-site/internal/database"
	"restaurant-site/internal/logger"
	"restaurant-site/internal/messaging"
	"restaurant-site/internal/payment"
	"restaurant-site/internal/services/health"
	"restaurant-site/internal/services/hoststand"
	"restaurant-site/internal/services/kitchen"
	menuapi "restaurant-site/internal/services/menu"
	"restaurant-site/internal/services/notification"
	"restaurant-site/internal/services/order"
	paymentapi "restaurant-site/internal/services/payment"
	"restaurant-site/internal/services/reservation"
	"restaurant-site/internal/storage"
	"restaurant-site/internal/web"
)

const (
	modeWeb                    = "web"
	modeNotificationSubscriber = "notification-subscriber"
	modeKitchenWorker          = "kitchen-worker"
	modeHostStand              = "host-stand"
)

func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "Path to the YAML config file")
		mode        = flag.String("mode", modeWeb, "Service mode (web, notification-subscriber, kitchen-worker, host-stand)")
		port        = flag.Int("port", 0, "HTTP port, overrides the config file")
		prefetch    = flag.Int("prefetch", 1, "RabbitMQ prefetch count for queue consumers")
		workerName  = flag.String("worker-name", "kitchen", "Kitchen worker name")
		cookingTime = flag.Duration("cooking-time", 10*time.Second, "Time a kitchen worker spends on each order")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode":           *mode,
		"port":           cfg.Server.Port,
		"storage_driver": cfg.Storage.Driver,
		"rabbitmq":       cfg.RabbitMQ.Enabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case modeWeb:
		err = runWeb(ctx, cfg, log)
	case modeNotificationSubscriber:
		err = runNotificationSubscriber(ctx, cfg, log, *prefetch)
	case modeKitchenWorker:
		err = runKitchenWorker(ctx, cfg, log, *workerName, *cookingTime, *prefetch)
	case modeHostStand:
		err = runHostStand(ctx, cfg, log, *prefetch)
	default:
		err = fmt.Errorf("unknown mode: %s", *mode)
	}
	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runWeb serves the JSON API until ctx is cancelled
func runWeb(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()
	checks := make(map[string]health.Check)

	store, closeStore, err := openStorage(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeStore()

	notifier, closeNotifier, err := openNotifier(cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeNotifier()

	var provider payment.Provider
	if cfg.Payment.SecretKey != "" {
		provider = payment.NewStripeProvider(cfg.Payment.SecretKey, nil)
	} else {
		log.Info("payment_disabled", "STRIPE_SECRET_KEY is not set, payment intents will be refused", requestID, nil)
	}
	gateway := payment.NewGateway(provider, cfg.Payment.Currency, cfg.Payment.Timeout)

	mux := http.NewServeMux()
	reservation.NewHandler(reservation.NewService(store, notifier, log), log).Register(mux)
	order.NewHandler(order.NewService(store, notifier, log), log).Register(mux)
	paymentapi.NewHandler(gateway, log).Register(mux)
	menuapi.NewHandler(log).Register(mux)
	health.NewHandler(modeWeb, checks, log).Register(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: web.WithLogging(log, mux),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("service_started", fmt.Sprintf("Web server started on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// runNotificationSubscriber prints status change notifications until ctx is cancelled
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg.RabbitMQURL(), log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	return notification.NewSubscriber(consumer, log, os.Stdout).Start(ctx)
}

// runHostStand prints a seating ticket for each new reservation until ctx is cancelled
func runHostStand(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg.RabbitMQURL(), log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}

	consumer := messaging.NewConsumer(conn, log, messaging.HostStandQueue, modeHostStand, prefetch)
	return hoststand.NewListener(consumer, log, os.Stdout).Start(ctx)
}

// runKitchenWorker cooks orders from the kitchen queue. Orders live in the
// database shared with the web process, so the postgres driver is required.
func runKitchenWorker(ctx context.Context, cfg *config.Config, log *logger.Logger, name string, cookingTime time.Duration, prefetch int) error {
	if cfg.Storage.Driver != config.DriverPostgres {
		return fmt.Errorf("kitchen worker requires storage driver %q", config.DriverPostgres)
	}

	store, closeStore, err := openStorage(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	conn, err := messaging.New(cfg.RabbitMQURL(), log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}

	orders := order.NewService(store, messaging.NewPublisher(conn, log), log)
	consumer := messaging.NewConsumer(conn, log, messaging.KitchenQueue, name, prefetch)
	return kitchen.NewWorker(name, cookingTime, consumer, orders, log).Start(ctx)
}

// openStorage builds the configured store. A non nil checks map receives the
// database health check.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger, checks map[string]health.Check) (storage.Storage, func(), error) {
	if cfg.Storage.Driver != config.DriverPostgres {
		return storage.NewMemStorage(), func() {}, nil
	}

	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log.Info("db_connected", "Connected to PostgreSQL database", "startup", nil)

	if err := db.RunMigrations(ctx, cfg.Database.MigrationsPath); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if checks != nil {
		checks["database"] = db.Ping
	}

	sqlDB := db.SQLDB()
	closeFn := func() {
		sqlDB.Close()
		db.Close()
	}
	return storage.NewPostgresStorage(sqlDB), closeFn, nil
}

// openNotifier returns a RabbitMQ publisher when enabled and a no-op notifier otherwise
func openNotifier(cfg *config.Config, log *logger.Logger, checks map[string]health.Check) (messaging.Notifier, func(), error) {
	if !cfg.RabbitMQ.Enabled {
		return messaging.NopNotifier{}, func() {}, nil
	}

	conn, err := messaging.New(cfg.RabbitMQURL(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize messaging: %w", err)
	}

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", nil)

	checks["rabbitmq"] = func(context.Context) error {
		if conn.IsClosed() {
			return errors.New("rabbitmq connection is closed")
		}
		return nil
	}
	return messaging.NewPublisher(conn, log), func() { conn.Close() }, nil
}
