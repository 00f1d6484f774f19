package models

import "time"

type ShareLink struct {
	ShareID   string    `json:"id"`
	UserID    string    `json:"user_id"`
	Hash      string    `json:"hash"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
