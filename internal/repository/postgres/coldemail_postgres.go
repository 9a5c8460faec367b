package postgres

import (
	"context"
	"database/sql"

	"jobassist/internal/model"
	"jobassist/internal/repository"
)

// ColdEmailPostgres is a PostgreSQL implementation of repository.ColdEmailRepository.
type ColdEmailPostgres struct {
	db *sql.DB
}

// NewColdEmailPostgres creates a new ColdEmailPostgres repository.
func NewColdEmailPostgres(db *sql.DB) *ColdEmailPostgres {
	return &ColdEmailPostgres{db: db}
}

var _ repository.ColdEmailRepository = (*ColdEmailPostgres)(nil)

// Create inserts a new cold email row and returns the stored record.
func (r *ColdEmailPostgres) Create(ctx context.Context, e *model.ColdEmail) (*model.ColdEmail, error) {
	const q = `
		INSERT INTO cold_emails (id, resume_id, job_description, linkedin, tone, email, model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, resume_id, job_description, linkedin, tone, email, model, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		e.ID,
		e.ResumeID,
		e.JobDescription,
		e.LinkedIn,
		e.Tone,
		e.Email,
		e.Model,
		e.CreatedAt,
	)
	var out model.ColdEmail
	if err := row.Scan(
		&out.ID,
		&out.ResumeID,
		&out.JobDescription,
		&out.LinkedIn,
		&out.Tone,
		&out.Email,
		&out.Model,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single cold email by its ID.
func (r *ColdEmailPostgres) FindByID(ctx context.Context, id string) (*model.ColdEmail, error) {
	const q = `
		SELECT id, resume_id, job_description, linkedin, tone, email, model, created_at
		FROM cold_emails
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var e model.ColdEmail
	if err := row.Scan(
		&e.ID,
		&e.ResumeID,
		&e.JobDescription,
		&e.LinkedIn,
		&e.Tone,
		&e.Email,
		&e.Model,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByResume returns cold emails for one resume using LIMIT/OFFSET pagination and a total count.
func (r *ColdEmailPostgres) ListByResume(ctx context.Context, resumeID string, pq repository.PageQuery) (*repository.PageResult[model.ColdEmail], error) {
	const qCount = `SELECT COUNT(*) FROM cold_emails WHERE resume_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, resumeID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, resume_id, job_description, linkedin, tone, email, model, created_at
		FROM cold_emails
		WHERE resume_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, resumeID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ColdEmail, 0)
	for rows.Next() {
		var e model.ColdEmail
		if err := rows.Scan(
			&e.ID,
			&e.ResumeID,
			&e.JobDescription,
			&e.LinkedIn,
			&e.Tone,
			&e.Email,
			&e.Model,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ColdEmail]{
		Items: items,
		Total: total,
	}, nil
}
