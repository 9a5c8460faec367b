package postgres

import (
	"context"
	"database/sql"

	"jobassist/internal/model"
	"jobassist/internal/repository"
)

// AnalysisPostgres is a PostgreSQL implementation of repository.AnalysisRepository.
type AnalysisPostgres struct {
	db *sql.DB
}

// NewAnalysisPostgres creates a new AnalysisPostgres repository.
func NewAnalysisPostgres(db *sql.DB) *AnalysisPostgres {
	return &AnalysisPostgres{db: db}
}

var _ repository.AnalysisRepository = (*AnalysisPostgres)(nil)

// Create inserts a new analysis row and returns the stored record.
func (r *AnalysisPostgres) Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error) {
	const q = `
		INSERT INTO analyses (id, resume_id, kind, job_description, response, match_percentage, rating, model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, resume_id, kind, job_description, response, match_percentage, rating, model, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.ResumeID,
		a.Kind,
		a.JobDescription,
		a.Response,
		a.MatchPercentage,
		nullableString(a.Rating),
		a.Model,
		a.CreatedAt,
	)
	return scanAnalysis(row)
}

// FindByID fetches a single analysis by its ID.
func (r *AnalysisPostgres) FindByID(ctx context.Context, id string) (*model.Analysis, error) {
	const q = `
		SELECT id, resume_id, kind, job_description, response, match_percentage, rating, model, created_at
		FROM analyses
		WHERE id = $1
	`
	return scanAnalysis(r.db.QueryRowContext(ctx, q, id))
}

// ListByResume returns analyses for one resume using LIMIT/OFFSET pagination and a total count.
func (r *AnalysisPostgres) ListByResume(ctx context.Context, resumeID string, pq repository.PageQuery) (*repository.PageResult[model.Analysis], error) {
	const qCount = `SELECT COUNT(*) FROM analyses WHERE resume_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, resumeID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, resume_id, kind, job_description, response, match_percentage, rating, model, created_at
		FROM analyses
		WHERE resume_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, resumeID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysisRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Analysis]{
		Items: items,
		Total: total,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysisRow(s rowScanner) (*model.Analysis, error) {
	var (
		a      model.Analysis
		pct    sql.NullInt64
		rating sql.NullString
	)
	if err := s.Scan(
		&a.ID,
		&a.ResumeID,
		&a.Kind,
		&a.JobDescription,
		&a.Response,
		&pct,
		&rating,
		&a.Model,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	if pct.Valid {
		v := int(pct.Int64)
		a.MatchPercentage = &v
	}
	a.Rating = rating.String
	return &a, nil
}

func scanAnalysis(row *sql.Row) (*model.Analysis, error) {
	return scanAnalysisRow(row)
}

// nullableString maps "" to NULL so empty ratings are not stored as empty strings.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
