package repository

import (
	"context"

	"jobassist/internal/model"
)

// ResumeRepository defines data access for resumes using SQL queries only.
// No business logic here — strictly persistence operations.
type ResumeRepository interface {
	// Create inserts a new resume record.
	// The caller should provide required fields (e.g., ID, CreatedAt) according to the database schema defaults.
	// Returns the stored resume (may include values set by the DB).
	Create(ctx context.Context, res *model.Resume) (*model.Resume, error)

	// FindByID returns a resume by its ID.
	FindByID(ctx context.Context, id string) (*model.Resume, error)

	// List returns a paginated list of resumes and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Resume], error)

	// Delete removes a resume by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
