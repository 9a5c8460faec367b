package postgres

import (
	"context"
	"database/sql"

	"jobassist/internal/model"
	"jobassist/internal/repository"
)

// ResumePostgres is a PostgreSQL implementation of repository.ResumeRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ResumePostgres struct {
	db *sql.DB
}

// NewResumePostgres creates a new ResumePostgres repository.
func NewResumePostgres(db *sql.DB) *ResumePostgres {
	return &ResumePostgres{db: db}
}

var _ repository.ResumeRepository = (*ResumePostgres)(nil)

// Create inserts a new resume row and returns the stored record.
func (r *ResumePostgres) Create(ctx context.Context, res *model.Resume) (*model.Resume, error) {
	const q = `
		INSERT INTO resumes (id, filename, storage_path, size, content_type, text_content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, filename, storage_path, size, content_type, text_content, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		res.ID,
		res.Filename,
		res.StoragePath,
		res.Size,
		res.ContentType,
		res.TextContent,
		res.CreatedAt,
	)
	var out model.Resume
	if err := row.Scan(
		&out.ID,
		&out.Filename,
		&out.StoragePath,
		&out.Size,
		&out.ContentType,
		&out.TextContent,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single resume by its ID.
func (r *ResumePostgres) FindByID(ctx context.Context, id string) (*model.Resume, error) {
	const q = `
		SELECT id, filename, storage_path, size, content_type, text_content, created_at
		FROM resumes
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var res model.Resume
	if err := row.Scan(
		&res.ID,
		&res.Filename,
		&res.StoragePath,
		&res.Size,
		&res.ContentType,
		&res.TextContent,
		&res.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}

// List returns resumes using LIMIT/OFFSET pagination and a total count.
func (r *ResumePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Resume], error) {
	// Count total rows
	const qCount = `SELECT COUNT(*) FROM resumes`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	const qList = `
		SELECT id, filename, storage_path, size, content_type, text_content, created_at
		FROM resumes
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Resume, 0)
	for rows.Next() {
		var res model.Resume
		if err := rows.Scan(
			&res.ID,
			&res.Filename,
			&res.StoragePath,
			&res.Size,
			&res.ContentType,
			&res.TextContent,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Resume]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a resume by ID. It does not return an error if the row does not exist.
func (r *ResumePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM resumes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
