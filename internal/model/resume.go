package model

import "time"

// Resume represents an uploaded resume PDF and its extracted text.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Resume struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	TextContent string    `json:"text_content"`
	CreatedAt   time.Time `json:"created_at"`
}
