package models

import "time"

// Document is an uploaded PDF whose text has been chunked and indexed for
// retrieval. Name doubles as the vector collection identifier.
type Document struct {
	DocumentID   string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name"`
	ChunkCount   int       `json:"chunks"`
	UploadedAt   time.Time `json:"upload_date"`
}

type DocumentChunk struct {
	DocumentID string `json:"document_id"`
	Index      int    `json:"chunk_index"`
	Body       string `json:"text"`
}
