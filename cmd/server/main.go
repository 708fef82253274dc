package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Spok95/kit-inventory/internal/bot"
	"github.com/Spok95/kit-inventory/internal/config"
	"github.com/Spok95/kit-inventory/internal/domain/inventory"
	"github.com/Spok95/kit-inventory/internal/infra/db"
	httpx "github.com/Spok95/kit-inventory/internal/infra/http"
	"github.com/Spok95/kit-inventory/internal/infra/logger"
	"github.com/Spok95/kit-inventory/internal/infra/metrics"
	"github.com/Spok95/kit-inventory/internal/infra/tracing"
	"github.com/Spok95/kit-inventory/internal/storage/memstore"
	"github.com/Spok95/kit-inventory/internal/storage/pgstore"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/example.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	log := logger.New(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing.Endpoint, cfg.App.Env)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	notifier, err := newNotifier(cfg, log)
	if err != nil {
		return err
	}

	svc := inventory.New(store, notifier, log, m,
		inventory.WithSeed(cfg.Inventory.SeedQuantity, cfg.Inventory.SeedDangerLevel))
	if _, err := svc.Bootstrap(ctx); err != nil {
		return err
	}

	opts := httpx.Options{BasePath: cfg.HTTP.BasePath}
	if cfg.Metrics.Enabled {
		opts.Gatherer = reg
	}
	srv := httpx.New(cfg.HTTP.Addr, httpx.Routes(svc, log, m, opts))
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("http server error", "err", err)
			stop()
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr, "base_path", cfg.HTTP.BasePath)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
	return nil
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (inventory.Store, func(), error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn("using in-memory storage, data is lost on restart")
		return memstore.New(), func() {}, nil
	}

	if err := db.Migrate(cfg.Postgres.DSN); err != nil {
		return nil, nil, err
	}
	log.Info("migrations applied")

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, nil, err
	}
	log.Info("db connected")
	return pgstore.New(pool), pool.Close, nil
}

func newNotifier(cfg config.Config, log *slog.Logger) (inventory.Notifier, error) {
	if cfg.Telegram.Token == "" {
		log.Info("telegram token not set, low stock alerts go to the log")
		return bot.NewConsole(log), nil
	}
	api, err := bot.Connect(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	log.Info("telegram authorized", "bot", api.Self.UserName, "chats", len(cfg.Telegram.AdminChatIDs))
	return bot.New(api, log, cfg.Telegram.AdminChatIDs, cfg.Telegram.MessagesPerSecond), nil
}
