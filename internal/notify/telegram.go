// Package notify delivers daily briefings to users over Telegram.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dailycoach/internal/engine"
	"dailycoach/internal/i18n"
	"dailycoach/internal/models"
	"dailycoach/internal/platform/logger"
)

// Sender sends a text message to a chat
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// TelegramSender отправляет сообщения через Bot API
type TelegramSender struct {
	api *tgbotapi.BotAPI
}

// NewTelegramSender авторизуется в Bot API
func NewTelegramSender(token string) (*TelegramSender, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &TelegramSender{api: api}, nil
}

// BotName returns the bot's username
func (t *TelegramSender) BotName() string {
	return t.api.Self.UserName
}

func (t *TelegramSender) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send to chat %d: %w", chatID, err)
	}
	return nil
}

// Notifier formats briefings and hands them to a Sender
type Notifier struct {
	sender  Sender
	catalog *i18n.Catalog
	log     *logger.Logger
}

// NewNotifier создаёт отправщик сводок
func NewNotifier(sender Sender, catalog *i18n.Catalog, log *logger.Logger) *Notifier {
	if catalog == nil {
		catalog = i18n.Default()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{sender: sender, catalog: catalog, log: log}
}

// Deliver sends b to the user's chat. Users without a chat id are skipped.
func (n *Notifier) Deliver(ctx context.Context, u models.UserProfile, b engine.Briefing) error {
	if u.TelegramChatID == 0 {
		n.log.Debug("no telegram chat, skip", "user_id", u.ID)
		return nil
	}

	text := FormatBriefing(n.catalog, i18n.ParseLanguage(u.Language), u.Name, b)
	if err := n.sender.Send(ctx, u.TelegramChatID, text); err != nil {
		return err
	}
	n.log.Info("briefing sent", "user_id", u.ID, "recommendation", b.Decision.Recommendation)
	return nil
}
