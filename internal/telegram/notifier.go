// Package telegram delivers community notifications through the bot API.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tingnect-api/internal/config"
	"tingnect-api/internal/logger"
)

// ErrDisabled is returned by Notify when bot credentials are not configured.
var ErrDisabled = errors.New("telegram notifier disabled")

type Notifier struct {
	bot      *tgbotapi.BotAPI
	chatID   string
	threadID string
	log      *logger.Logger
}

// New builds a notifier. Missing credentials yield a disabled notifier, not
// an error: notification is optional for the service as a whole.
func New(cfg config.Config) *Notifier {
	n := &Notifier{
		chatID:   cfg.TelegramChatID,
		threadID: cfg.MessageThreadID,
		log:      logger.Named("telegram"),
	}
	if !cfg.TelegramConfigured() {
		n.log.Warn().Msg("telegram credentials not configured, notifications disabled")
		return n
	}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.TelegramToken, tgbotapi.APIEndpoint,
		&http.Client{Timeout: cfg.ExternalCallTimeout})
	if err != nil {
		n.log.Warn().Err(err).Msg("telegram bot init failed, notifications disabled")
		return n
	}
	n.bot = bot
	return n
}

// Enabled reports whether messages can actually be delivered.
func (n *Notifier) Enabled() bool { return n.bot != nil }

type sentMessage struct {
	MessageID int `json:"message_id"`
}

// Notify posts a Markdown message to the configured chat, optionally into a
// topic thread, and returns the provider message id. The raw sendMessage
// request is used because the typed config predates topic threads.
func (n *Notifier) Notify(ctx context.Context, text string) (int, error) {
	if !n.Enabled() {
		return 0, ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	params := tgbotapi.Params{
		"chat_id":                  n.chatID,
		"text":                     text,
		"parse_mode":               "Markdown",
		"disable_web_page_preview": "true",
	}
	params.AddNonEmpty("message_thread_id", n.threadID)

	resp, err := n.bot.MakeRequest("sendMessage", params)
	if err != nil {
		return 0, err
	}
	if !resp.Ok {
		return 0, fmt.Errorf("telegram: %d %s", resp.ErrorCode, resp.Description)
	}

	var sent sentMessage
	if err := json.Unmarshal(resp.Result, &sent); err != nil {
		return 0, fmt.Errorf("telegram result: %w", err)
	}
	return sent.MessageID, nil
}
