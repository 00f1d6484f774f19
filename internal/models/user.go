package models

import "time"

type User struct {
	UserID           string    `json:"user_id"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	TelegramChatID   string    `json:"telegram_chat_id"`
	TelegramUsername string    `json:"telegram_username"`
	CreatedAt        time.Time `json:"created_at"`
}

// HasLinkedTelegram reports whether the account has a Telegram chat bound to it.
func (u *User) HasLinkedTelegram() bool {
	return u.TelegramChatID != ""
}
