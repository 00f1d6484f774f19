package repository

import (
	"context"

	"github.com/Shivakushwah143/SecondBrain/internal/database"
	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO users (user_id, username, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		user.UserID, user.Username, user.PasswordHash,
	).Scan(&user.CreatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return r.scanOne(ctx,
		`SELECT user_id, username, password_hash, telegram_chat_id, telegram_username, created_at
		 FROM users WHERE user_id = $1`, userID)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.scanOne(ctx,
		`SELECT user_id, username, password_hash, telegram_chat_id, telegram_username, created_at
		 FROM users WHERE username = $1`, username)
}

func (r *UserRepository) GetByTelegramChatID(ctx context.Context, chatID string) (*models.User, error) {
	return r.scanOne(ctx,
		`SELECT user_id, username, password_hash, telegram_chat_id, telegram_username, created_at
		 FROM users WHERE telegram_chat_id = $1`, chatID)
}

func (r *UserRepository) LinkTelegram(ctx context.Context, userID, chatID, telegramUsername string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET telegram_chat_id = $1, telegram_username = $2 WHERE user_id = $3`,
		chatID, telegramUsername, userID,
	)
	return err
}

func (r *UserRepository) scanOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.Pool.QueryRow(ctx, query, arg).Scan(
		&user.UserID, &user.Username, &user.PasswordHash,
		&user.TelegramChatID, &user.TelegramUsername, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
