package repository

import (
	"context"

	"jobassist/internal/model"
)

// ColdEmailRepository defines data access for generated cold emails.
type ColdEmailRepository interface {
	// Create inserts a new cold email record and returns the stored row.
	Create(ctx context.Context, e *model.ColdEmail) (*model.ColdEmail, error)

	// FindByID returns a cold email by its ID.
	FindByID(ctx context.Context, id string) (*model.ColdEmail, error)

	// ListByResume returns a paginated list of cold emails for one resume, newest first.
	ListByResume(ctx context.Context, resumeID string, pq PageQuery) (*PageResult[model.ColdEmail], error)
}
