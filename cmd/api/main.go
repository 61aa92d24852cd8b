package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go-inventory-catalog/internal/config"
	"go-inventory-catalog/internal/event"
	"go-inventory-catalog/internal/handler"
	"go-inventory-catalog/internal/logging"
	"go-inventory-catalog/internal/repository"
	"go-inventory-catalog/internal/service"
	"go-inventory-catalog/internal/ws"
	"go-inventory-catalog/pkg/database"
	"go-inventory-catalog/pkg/jwt"
	"go-inventory-catalog/pkg/rabbitmq"
)

func main() {
	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	log := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("Server exited")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	// 2. Setup Database
	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()
	if err := repository.AutoMigrate(db); err != nil {
		return err
	}
	store := repository.NewStore(db)

	manager, err := jwt.NewManager(cfg.JWT)
	if err != nil {
		return err
	}
	authService := service.NewAuthService(store.Users, manager, log)

	// 3. Seed master user
	if created, err := authService.EnsureMaster(ctx, cfg.Seed.Email, cfg.Seed.Password, cfg.Seed.Name); err != nil {
		log.Warn("seed master user", slog.Any("error", err))
	} else if created {
		log.Info("master user created", slog.String("email", cfg.Seed.Email))
	}

	// 4. Setup WebSocket Hub and event fan-out
	wsHub := ws.NewHub(log)
	go wsHub.Run(ctx)

	events := event.Multi{wsHub}
	if cfg.RabbitMQ.Enabled() {
		client, err := rabbitmq.NewClient(cfg.RabbitMQ)
		if err != nil {
			return err
		}
		defer client.Close()
		events = append(events, event.NewBroker(client, log))
		log.Info("publishing events to RabbitMQ", slog.String("exchange", cfg.RabbitMQ.Exchange))
	}

	// 5. Dependency Injection (Wiring Layers)
	app := handler.NewApp(handler.Services{
		Auth:       authService,
		Users:      service.NewUserService(store.Users, log),
		Categories: service.NewCategoryService(store, events, log),
		Products:   service.NewProductService(store, events, log),
		Inventory:  service.NewInventoryService(store, events, log),
		Ingest:     service.NewIngestService(store, events, log),
		Dashboard:  service.NewDashboardService(store.Stats),
	}, handler.Options{
		AppName:     cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Upload:      cfg.Upload,
		AccessLog:   cfg.HTTP.AccessLog,
		Hub:         wsHub,
	})

	// 6. Graceful Shutdown
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", cfg.HTTP.Addr()))
		errc <- app.Listen(cfg.HTTP.Addr())
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	return app.Shutdown()
}
