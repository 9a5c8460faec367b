package repository

import (
	"context"

	"jobassist/internal/model"
)

// AnalysisRepository defines data access for resume analyses.
type AnalysisRepository interface {
	// Create inserts a new analysis record and returns the stored row.
	Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error)

	// FindByID returns an analysis by its ID.
	FindByID(ctx context.Context, id string) (*model.Analysis, error)

	// ListByResume returns a paginated list of analyses for one resume, newest first.
	ListByResume(ctx context.Context, resumeID string, pq PageQuery) (*PageResult[model.Analysis], error)
}
