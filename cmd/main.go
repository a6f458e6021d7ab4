// Command voltbot runs a Telegram bot that answers ticker messages with Bybit
// volatility reports and builds staged short-entry DCA ladders.
//
// Usage:
//
//	voltbot --config config.yaml
//	voltbot (uses defaults)
//
// Required environment variables:
//
//	TELEGRAM_BOT_TOKEN
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/vadiminshakov/voltbot/config"
	"github.com/vadiminshakov/voltbot/internal/services/market"
	"github.com/vadiminshakov/voltbot/internal/services/report"
	"github.com/vadiminshakov/voltbot/internal/telegram"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	client := market.NewClient(market.Config{
		BaseURL:    cfg.BybitBaseURL,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
	}, logger)

	svc := report.New(client, cfg.CandleLimit)

	bot, err := telegram.New(cfg.TelegramToken, svc, logger)
	if err != nil {
		logger.Fatal("failed to start telegram bot", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot.Run(ctx)
	logger.Info("bot stopped")
}
