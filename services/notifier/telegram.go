package notifier

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier delivers direct messages through the Telegram bot API.
// The opaque user ID is the recipient's chat ID in decimal form.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramNotifier creates a notifier from a bot token
func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("Telegram notifier authorized as %s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot}, nil
}

// SendDirect sends text to the user's private chat
func (t *TelegramNotifier) SendDirect(ctx context.Context, userID, text string) Outcome {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		log.Printf("notifier: user id %q is not a chat id: %v", userID, err)
		return Undeliverable
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		if isUndeliverable(err) {
			return Undeliverable
		}
		log.Printf("notifier: send to %s failed: %v", userID, err)
		return TransportError
	}
	return Delivered
}

// isUndeliverable distinguishes "recipient unreachable" API responses
// from transport-level failures
func isUndeliverable(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 403 {
			return true
		}
		return strings.Contains(apiErr.Message, "chat not found")
	}
	return false
}
