package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"jobassist/internal/model"
	"jobassist/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analysisColumns() []string {
	return []string{"id", "resume_id", "kind", "job_description", "response", "match_percentage", "rating", "model", "created_at"}
}

func TestAnalysisPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAnalysisPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("match kind with percentage", func(t *testing.T) {
		pct := 85
		a := &model.Analysis{
			ID:              "an-1",
			ResumeID:        "res-1",
			Kind:            model.KindMatch,
			JobDescription:  "a job",
			Response:        "- Match Percentage: 85%",
			MatchPercentage: &pct,
			Rating:          "Excellent Match",
			Model:           "anthropic/claude-3.5-sonnet",
			CreatedAt:       now,
		}

		rows := sqlmock.NewRows(analysisColumns()).
			AddRow(a.ID, a.ResumeID, a.Kind, a.JobDescription, a.Response, pct, a.Rating, a.Model, a.CreatedAt)

		mock.ExpectQuery("INSERT INTO analyses").
			WithArgs(a.ID, a.ResumeID, a.Kind, a.JobDescription, a.Response, a.MatchPercentage, sqlmock.AnyArg(), a.Model, a.CreatedAt).
			WillReturnRows(rows)

		result, err := repo.Create(ctx, a)

		assert.NoError(t, err)
		require.NotNil(t, result)
		require.NotNil(t, result.MatchPercentage)
		assert.Equal(t, 85, *result.MatchPercentage)
		assert.Equal(t, "Excellent Match", result.Rating)
	})

	t.Run("analyze kind stores NULLs", func(t *testing.T) {
		a := &model.Analysis{
			ID:             "an-2",
			ResumeID:       "res-1",
			Kind:           model.KindAnalyze,
			JobDescription: "a job",
			Response:       "detailed feedback",
			Model:          "anthropic/claude-3.5-sonnet",
			CreatedAt:      now,
		}

		rows := sqlmock.NewRows(analysisColumns()).
			AddRow(a.ID, a.ResumeID, a.Kind, a.JobDescription, a.Response, nil, nil, a.Model, a.CreatedAt)

		mock.ExpectQuery("INSERT INTO analyses").
			WithArgs(a.ID, a.ResumeID, a.Kind, a.JobDescription, a.Response, nil, sqlmock.AnyArg(), a.Model, a.CreatedAt).
			WillReturnRows(rows)

		result, err := repo.Create(ctx, a)

		assert.NoError(t, err)
		require.NotNil(t, result)
		assert.Nil(t, result.MatchPercentage)
		assert.Empty(t, result.Rating)
	})
}

func TestAnalysisPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAnalysisPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(analysisColumns()).
			AddRow("an-1", "res-1", "improve", "a job", "suggestions", nil, nil, "anthropic/claude-3.5-sonnet", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM analyses WHERE id = ?").
			WithArgs("an-1").
			WillReturnRows(rows)

		a, err := repo.FindByID(ctx, "an-1")

		assert.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, model.KindImprove, a.Kind)
		assert.Nil(t, a.MatchPercentage)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM analyses WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		a, err := repo.FindByID(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, IsNoRowsError(err))
		assert.Nil(t, a)
	})
}

func TestAnalysisPostgres_ListByResume(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAnalysisPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM analyses WHERE resume_id = ?").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows(analysisColumns()).
		AddRow("an-2", "res-1", "match", "a job", "- Match Percentage: 70%", 70, "Strong Match", "anthropic/claude-3.5-sonnet", time.Now()).
		AddRow("an-1", "res-1", "analyze", "a job", "feedback", nil, nil, "anthropic/claude-3.5-sonnet", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM analyses WHERE resume_id = (.+) ORDER BY").
		WithArgs("res-1", 10, 0).
		WillReturnRows(rows)

	res, err := repo.ListByResume(ctx, "res-1", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Items, 2)
	require.NotNil(t, res.Items[0].MatchPercentage)
	assert.Equal(t, 70, *res.Items[0].MatchPercentage)
	assert.Nil(t, res.Items[1].MatchPercentage)
	assert.NoError(t, mock.ExpectationsWereMet())
}
