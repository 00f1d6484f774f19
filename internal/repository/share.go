package repository

import (
	"context"

	"github.com/Shivakushwah143/SecondBrain/internal/database"
	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

type ShareLinkRepository struct {
	db *database.DB
}

func NewShareLinkRepository(db *database.DB) *ShareLinkRepository {
	return &ShareLinkRepository{db: db}
}

func (r *ShareLinkRepository) Create(ctx context.Context, link *models.ShareLink) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO share_links (share_id, user_id, hash, active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		link.ShareID, link.UserID, link.Hash, link.Active,
	).Scan(&link.CreatedAt)
}

func (r *ShareLinkRepository) GetActiveByUserID(ctx context.Context, userID string) (*models.ShareLink, error) {
	return r.scanOne(ctx,
		`SELECT share_id, user_id, hash, active, created_at
		 FROM share_links WHERE user_id = $1 AND active = true`, userID)
}

func (r *ShareLinkRepository) GetActiveByHash(ctx context.Context, hash string) (*models.ShareLink, error) {
	return r.scanOne(ctx,
		`SELECT share_id, user_id, hash, active, created_at
		 FROM share_links WHERE hash = $1 AND active = true`, hash)
}

func (r *ShareLinkRepository) Deactivate(ctx context.Context, userID string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE share_links SET active = false WHERE user_id = $1 AND active = true`,
		userID,
	)
	return err
}

func (r *ShareLinkRepository) scanOne(ctx context.Context, query string, arg any) (*models.ShareLink, error) {
	link := &models.ShareLink{}
	err := r.db.Pool.QueryRow(ctx, query, arg).Scan(
		&link.ShareID, &link.UserID, &link.Hash, &link.Active, &link.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return link, nil
}
