package repository

import (
	"context"

	"github.com/Shivakushwah143/SecondBrain/internal/database"
	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

type ContentRepository struct {
	db *database.DB
}

func NewContentRepository(db *database.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) Create(ctx context.Context, content *models.Content) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO contents (content_id, user_id, title, link, type, tags)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		content.ContentID, content.UserID, content.Title, content.Link, content.Type, content.Tags,
	).Scan(&content.CreatedAt)
}

func (r *ContentRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]*models.Content, error) {
	query := `SELECT content_id, user_id, title, link, type, tags, created_at
		 FROM contents WHERE user_id = $1 ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []*models.Content
	for rows.Next() {
		content := &models.Content{}
		if err := rows.Scan(&content.ContentID, &content.UserID, &content.Title, &content.Link,
			&content.Type, &content.Tags, &content.CreatedAt); err != nil {
			return nil, err
		}
		contents = append(contents, content)
	}
	return contents, rows.Err()
}

// Delete removes the content item if it belongs to userID. Returns false when
// no matching row exists.
func (r *ContentRepository) Delete(ctx context.Context, contentID, userID string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM contents WHERE content_id = $1 AND user_id = $2`,
		contentID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
