package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sentry/internal/config"
	"sentry/internal/dashboard"
	"sentry/internal/exchange"
	"sentry/internal/monitor"
	"sentry/internal/notify"
)

func main() {
	// .env is optional; the webhook URL may come from the real environment.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	buySource, err := exchange.NewClient(cfg.Monitor.BuyExchange, logger, cfg.Exchanges[cfg.Monitor.BuyExchange])
	if err != nil {
		log.Fatalf("cannot create buy leg client: %v", err)
	}
	sellSource, err := exchange.NewClient(cfg.Monitor.SellExchange, logger, cfg.Exchanges[cfg.Monitor.SellExchange])
	if err != nil {
		log.Fatalf("cannot create sell leg client: %v", err)
	}
	aggregator := exchange.NewAggregator(logger, buySource, sellSource)

	notifier, err := notify.NewDiscordNotifier(logger, os.Getenv("DISCORD_WEBHOOK_URL"))
	if err != nil {
		log.Fatalf("cannot create notifier: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var hub *dashboard.Hub
	if cfg.Dashboard.Enabled {
		hub = dashboard.NewHub(logger)
		go func() {
			if err := hub.Serve(ctx, cfg.Dashboard.ListenAddr); err != nil {
				logger.Error("dashboard server failed", "error", err)
			}
		}()
	}

	m := monitor.New(logger, &cfg, aggregator, notifier, hub)
	if err := m.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("monitor exited: %v", err)
	}
}
