// Package telegram is the chat boundary: it routes incoming messages to the
// report service and renders results or typed errors back to the user.
// The bot library dispatches every update on its own goroutine, so one slow
// fetch never blocks other chats.
package telegram

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/voltbot/internal/apperr"
	"github.com/vadiminshakov/voltbot/internal/entity"
	"github.com/vadiminshakov/voltbot/internal/services/report"
	"go.uber.org/zap"
)

const (
	startText = "Hi! Send a ticker like BTC, ETHUSDT, or PEPE and I'll return a volatility report.\n\n" +
		"Commands:\n" +
		"• Send a ticker for volatility report.\n" +
		"• /dca <ticker> <first_cost_basis> for a 6-step short DCA ladder.\n" +
		"Example: /dca BTC 1000"

	helpText = "Usage:\n" +
		"• Send a single ticker symbol (BTC, SOLUSDT, XRP) for volatility stats.\n" +
		"• Use /dca <ticker> <first_cost_basis> for short DCA ladder planning.\n" +
		"• Example: /dca BTC 1000"

	dcaUsageText = "Usage: /dca <TICKER> <FIRST_COST_BASIS>\nExample: /dca BTC 1000"

	genericErrorText = "Unexpected error. Please retry in a few seconds."
)

// reportService is the pipeline the bot delegates to.
type reportService interface {
	GenerateReport(ctx context.Context, userText string) (string, error)
	GenerateDCAPlan(ctx context.Context, ticker string, firstCostBasis decimal.Decimal) (entity.DCAPlan, error)
}

// Bot wraps the Telegram long-polling client around the report service.
type Bot struct {
	b   *bot.Bot
	svc reportService
	l   *zap.Logger
}

// New builds the bot and registers its handlers. The service object is
// injected here once at startup, nothing is held in package state.
func New(token string, svc reportService, l *zap.Logger) (*Bot, error) {
	t := &Bot{svc: svc, l: l}

	b, err := bot.New(token, bot.WithDefaultHandler(t.handleTicker))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create telegram bot")
	}

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, t.handleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, t.handleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/dca", bot.MatchTypePrefix, t.handleDCA)

	t.b = b
	return t, nil
}

// Run starts long polling and blocks until ctx is cancelled.
func (t *Bot) Run(ctx context.Context) {
	t.l.Info("bot started")
	t.b.Start(ctx)
}

func (t *Bot) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	t.reply(ctx, b, update, startText, "")
}

func (t *Bot) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	t.reply(ctx, b, update, helpText, "")
}

func (t *Bot) handleDCA(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	ticker, basis, ok := parseDCAArgs(update.Message.Text)
	if !ok {
		t.reply(ctx, b, update, dcaUsageText, "")
		return
	}

	t.sendTyping(ctx, b, update)

	plan, err := t.svc.GenerateDCAPlan(ctx, ticker, basis)
	if err != nil {
		t.replyError(ctx, b, update, err, "dca")
		return
	}

	t.reply(ctx, b, update, report.FormatDCAPlan(plan), models.ParseModeMarkdown)
}

func (t *Bot) handleTicker(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	userText := strings.TrimSpace(update.Message.Text)
	// unregistered commands fall through to the default handler, skip them
	if strings.HasPrefix(userText, "/") {
		return
	}

	t.sendTyping(ctx, b, update)

	text, err := t.svc.GenerateReport(ctx, userText)
	if err != nil {
		t.replyError(ctx, b, update, err, "report")
		return
	}

	t.reply(ctx, b, update, text, models.ParseModeMarkdown)
}

func (t *Bot) reply(ctx context.Context, b *bot.Bot, update *models.Update, text string, parseMode models.ParseMode) {
	if update.Message == nil {
		return
	}
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      text,
		ParseMode: parseMode,
	})
	if err != nil {
		t.l.Error("failed to send reply", zap.Int64("chat_id", update.Message.Chat.ID), zap.Error(err))
	}
}

// replyError maps a pipeline failure to a user-facing message. Typed errors
// go to the user verbatim, anything unexpected is logged and answered with a
// generic retry line.
func (t *Bot) replyError(ctx context.Context, b *bot.Bot, update *models.Update, err error, op string) {
	t.reply(ctx, b, update, userMessage(err, op, t.l), "")
}

func userMessage(err error, op string, l *zap.Logger) string {
	var (
		validation *apperr.ValidationError
		notFound   *apperr.SymbolNotFoundError
		dataSource *apperr.DataSourceError
	)

	switch {
	case errors.As(err, &validation):
		return "Error: " + validation.Reason
	case errors.As(err, &notFound):
		return "Error: " + notFound.Error()
	case errors.As(err, &dataSource):
		return "Error: " + dataSource.Reason
	default:
		l.Error("unexpected failure", zap.String("op", op), zap.Error(err))
		return genericErrorText
	}
}

func (t *Bot) sendTyping(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	_, err := b.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: update.Message.Chat.ID,
		Action: models.ChatActionTyping,
	})
	if err != nil {
		t.l.Warn("failed to send typing action", zap.Error(err))
	}
}

// parseDCAArgs extracts "/dca <TICKER> <FIRST_COST_BASIS>" arguments.
func parseDCAArgs(text string) (string, decimal.Decimal, bool) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return "", decimal.Decimal{}, false
	}

	basis, err := decimal.NewFromString(fields[2])
	if err != nil {
		return "", decimal.Decimal{}, false
	}

	return fields[1], basis, true
}
