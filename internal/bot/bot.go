// Package bot runs the inbound Telegram side of the second brain: linking a
// chat to a web account and saving content without leaving Telegram.
package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Shivakushwah143/SecondBrain/internal/database"
	"github.com/Shivakushwah143/SecondBrain/internal/repository"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	handlers *Handlers
}

func New(token, jwtSecret string, db *database.DB) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	handlers := NewHandlers(api, &Repositories{
		User:     repository.NewUserRepository(db),
		Content:  repository.NewContentRepository(db),
		Reminder: repository.NewReminderRepository(db),
	}, jwtSecret)

	return &Bot{api: api, handlers: handlers}, nil
}

// API exposes the underlying client so the notification channel can share the
// same bot identity.
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	if update.Message.IsCommand() {
		b.handlers.HandleCommand(ctx, update.Message)
		return
	}

	b.handlers.HandleMessage(ctx, update.Message)
}
