package notify

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramChannel sends messages through the Telegram Bot API. Destinations
// are numeric chat ids rendered as strings.
type TelegramChannel struct {
	api *tgbotapi.BotAPI
}

func NewTelegram(api *tgbotapi.BotAPI) *TelegramChannel {
	return &TelegramChannel{api: api}
}

func (t *TelegramChannel) Send(destination, text string) error {
	chatID, err := strconv.ParseInt(destination, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", destination, err)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send to %s: %w", destination, err)
	}
	return nil
}
