package repository

import (
	"context"

	"github.com/Shivakushwah143/SecondBrain/internal/database"
	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

type DocumentRepository struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document, chunks []string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO documents (document_id, user_id, name, original_name, chunk_count)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING uploaded_at`,
		doc.DocumentID, doc.UserID, doc.Name, doc.OriginalName, len(chunks),
	).Scan(&doc.UploadedAt)
	if err != nil {
		return err
	}
	doc.ChunkCount = len(chunks)

	for i, body := range chunks {
		if _, err := tx.Exec(ctx,
			`INSERT INTO document_chunks (document_id, chunk_index, body) VALUES ($1, $2, $3)`,
			doc.DocumentID, i, body,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *DocumentRepository) GetByName(ctx context.Context, name, userID string) (*models.Document, error) {
	doc := &models.Document{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT document_id, user_id, name, original_name, chunk_count, uploaded_at
		 FROM documents WHERE name = $1 AND user_id = $2`,
		name, userID,
	).Scan(&doc.DocumentID, &doc.UserID, &doc.Name, &doc.OriginalName, &doc.ChunkCount, &doc.UploadedAt)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *DocumentRepository) GetByUserID(ctx context.Context, userID string) ([]*models.Document, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT document_id, user_id, name, original_name, chunk_count, uploaded_at
		 FROM documents WHERE user_id = $1 ORDER BY uploaded_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		if err := rows.Scan(&doc.DocumentID, &doc.UserID, &doc.Name, &doc.OriginalName,
			&doc.ChunkCount, &doc.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// GetChunk returns the text of one chunk of a document.
func (r *DocumentRepository) GetChunk(ctx context.Context, documentID string, index int) (string, error) {
	var body string
	err := r.db.Pool.QueryRow(ctx,
		`SELECT body FROM document_chunks WHERE document_id = $1 AND chunk_index = $2`,
		documentID, index,
	).Scan(&body)
	return body, err
}
