package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"jobassist/internal/llm"
	llmMocks "jobassist/internal/llm/mocks"
	"jobassist/internal/model"
	"jobassist/internal/repository"
	repoMocks "jobassist/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAnalysisService_Create(t *testing.T) {
	ctx := context.Background()
	resume := &model.Resume{ID: "res-1", TextContent: "resume text"}

	tests := []struct {
		name       string
		resumeID   string
		kind       model.AnalysisKind
		jobDesc    string
		setupMocks func(mResumes *repoMocks.MockResumeRepository, mAnalyses *repoMocks.MockAnalysisRepository, mLLM *llmMocks.MockClient)
		check      func(t *testing.T, a *model.Analysis)
		wantErr    error
	}{
		{
			name:     "analyze kind",
			resumeID: "res-1",
			kind:     model.KindAnalyze,
			jobDesc:  "a job",
			setupMocks: func(mResumes *repoMocks.MockResumeRepository, mAnalyses *repoMocks.MockAnalysisRepository, mLLM *llmMocks.MockClient) {
				mResumes.On("FindByID", ctx, "res-1").Return(resume, nil)
				mLLM.On("Complete", ctx, mock.MatchedBy(func(prompt string) bool {
					return strings.Contains(prompt, "Job Description:\na job") &&
						strings.Contains(prompt, "Resume:\nresume text") &&
						strings.Contains(prompt, llm.TaskAnalyze)
				}), llm.CompletionOptions{SystemPrompt: llm.SystemPrompt}).
					Return("detailed feedback", nil)
				mLLM.On("Model").Return("anthropic/claude-3.5-sonnet")
				mAnalyses.On("Create", ctx, mock.MatchedBy(func(a *model.Analysis) bool {
					return a.Kind == model.KindAnalyze && a.Response == "detailed feedback" &&
						a.MatchPercentage == nil && a.Rating == ""
				})).Return(&model.Analysis{ID: "an-1", Kind: model.KindAnalyze}, nil)
			},
			check: func(t *testing.T, a *model.Analysis) {
				assert.Equal(t, "an-1", a.ID)
			},
		},
		{
			name:     "match kind derives percentage and rating",
			resumeID: "res-1",
			kind:     model.KindMatch,
			jobDesc:  "a job",
			setupMocks: func(mResumes *repoMocks.MockResumeRepository, mAnalyses *repoMocks.MockAnalysisRepository, mLLM *llmMocks.MockClient) {
				mResumes.On("FindByID", ctx, "res-1").Return(resume, nil)
				mLLM.On("Complete", ctx, mock.Anything, mock.Anything).
					Return("- Match Percentage: 85%\n- Missing Keywords: [Go]", nil)
				mLLM.On("Model").Return("anthropic/claude-3.5-sonnet")
				mAnalyses.On("Create", ctx, mock.MatchedBy(func(a *model.Analysis) bool {
					return a.Kind == model.KindMatch &&
						a.MatchPercentage != nil && *a.MatchPercentage == 85 &&
						a.Rating == "Excellent Match"
				})).Return(&model.Analysis{
					ID:              "an-2",
					Kind:            model.KindMatch,
					MatchPercentage: intPtr(85),
					Rating:          "Excellent Match",
				}, nil)
			},
			check: func(t *testing.T, a *model.Analysis) {
				require.NotNil(t, a.MatchPercentage)
				assert.Equal(t, 85, *a.MatchPercentage)
				assert.Equal(t, "Excellent Match", a.Rating)
			},
		},
		{
			name:     "invalid kind",
			resumeID: "res-1",
			kind:     model.AnalysisKind("summarize"),
			jobDesc:  "a job",
			setupMocks: func(mResumes *repoMocks.MockResumeRepository, mAnalyses *repoMocks.MockAnalysisRepository, mLLM *llmMocks.MockClient) {
			},
			wantErr: ErrInvalidKind,
		},
		{
			name:     "missing job description",
			resumeID: "res-1",
			kind:     model.KindAnalyze,
			jobDesc:  "   ",
			setupMocks: func(mResumes *repoMocks.MockResumeRepository, mAnalyses *repoMocks.MockAnalysisRepository, mLLM *llmMocks.MockClient) {
			},
			wantErr: ErrJobDescriptionRequired,
		},
		{
			name:     "missing resume id",
			resumeID: "",
			kind:     model.KindAnalyze,
			jobDesc:  "a job",
			setupMocks: func(mResumes *repoMocks.MockResumeRepository, mAnalyses *repoMocks.MockAnalysisRepository, mLLM *llmMocks.MockClient) {
			},
			wantErr: ErrIDRequired,
		},
		{
			name:     "resume not found",
			resumeID: "missing",
			kind:     model.KindAnalyze,
			jobDesc:  "a job",
			setupMocks: func(mResumes *repoMocks.MockResumeRepository, mAnalyses *repoMocks.MockAnalysisRepository, mLLM *llmMocks.MockClient) {
				mResumes.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name:     "llm failure",
			resumeID: "res-1",
			kind:     model.KindAnalyze,
			jobDesc:  "a job",
			setupMocks: func(mResumes *repoMocks.MockResumeRepository, mAnalyses *repoMocks.MockAnalysisRepository, mLLM *llmMocks.MockClient) {
				mResumes.On("FindByID", ctx, "res-1").Return(resume, nil)
				mLLM.On("Complete", ctx, mock.Anything, mock.Anything).
					Return("", errors.New("upstream down"))
			},
			wantErr: ErrCompletion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mResumes := new(repoMocks.MockResumeRepository)
			mAnalyses := new(repoMocks.MockAnalysisRepository)
			mLLM := new(llmMocks.MockClient)
			tt.setupMocks(mResumes, mAnalyses, mLLM)

			svc := NewAnalysisService(mResumes, mAnalyses, mLLM)
			a, err := svc.Create(ctx, tt.resumeID, tt.kind, tt.jobDesc)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.NotNil(t, a)
				if tt.check != nil {
					tt.check(t, a)
				}
			}

			mResumes.AssertExpectations(t)
			mAnalyses.AssertExpectations(t)
			mLLM.AssertExpectations(t)
		})
	}
}

func TestAnalysisService_ListByResume(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults applied", func(t *testing.T) {
		mAnalyses := new(repoMocks.MockAnalysisRepository)
		mAnalyses.On("ListByResume", ctx, "res-1", repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Analysis]{Items: []model.Analysis{}, Total: 0}, nil)

		svc := NewAnalysisService(nil, mAnalyses, nil)
		res, err := svc.ListByResume(ctx, "res-1", 0, -1)

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
	})

	t.Run("missing resume id", func(t *testing.T) {
		svc := NewAnalysisService(nil, nil, nil)
		_, err := svc.ListByResume(ctx, "", 10, 0)
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestAnalysisService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mAnalyses := new(repoMocks.MockAnalysisRepository)
		mAnalyses.On("FindByID", ctx, "an-1").Return(&model.Analysis{ID: "an-1"}, nil)

		svc := NewAnalysisService(nil, mAnalyses, nil)
		a, err := svc.Get(ctx, "an-1")

		assert.NoError(t, err)
		assert.Equal(t, "an-1", a.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mAnalyses := new(repoMocks.MockAnalysisRepository)
		mAnalyses.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewAnalysisService(nil, mAnalyses, nil)
		_, err := svc.Get(ctx, "missing")

		assert.ErrorIs(t, err, ErrAnalysisNotFound)
	})
}
