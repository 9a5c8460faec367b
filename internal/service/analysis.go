package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobassist/internal/llm"
	"jobassist/internal/match"
	"jobassist/internal/model"
	"jobassist/internal/repository"
)

var (
	ErrJobDescriptionRequired = errors.New("job description is required")
	ErrInvalidKind            = errors.New("invalid analysis kind")
	ErrAnalysisNotFound       = errors.New("analysis not found")
	// ErrCompletion wraps upstream LLM failures so handlers can map them to 502.
	ErrCompletion = errors.New("llm completion failed")
)

// AnalysisListResult is the service-level DTO for paginated analyses.
type AnalysisListResult struct {
	Items []model.Analysis `json:"data"`
	Total int              `json:"total"`
}

// AnalysisService runs LLM analyses of a resume against a job description.
type AnalysisService interface {
	// Create runs the requested analysis kind and persists the result.
	// For KindMatch the match percentage and rating are derived from the response.
	Create(ctx context.Context, resumeID string, kind model.AnalysisKind, jobDescription string) (*model.Analysis, error)

	// ListByResume returns analyses for one resume using limit/offset and a total count.
	ListByResume(ctx context.Context, resumeID string, limit, offset int) (*AnalysisListResult, error)

	// Get returns a single analysis by its ID.
	Get(ctx context.Context, id string) (*model.Analysis, error)
}

type analysisService struct {
	resumes  repository.ResumeRepository
	analyses repository.AnalysisRepository
	llm      llm.Client
}

// NewAnalysisService constructs a new AnalysisService.
func NewAnalysisService(resumes repository.ResumeRepository, analyses repository.AnalysisRepository, client llm.Client) AnalysisService {
	return &analysisService{resumes: resumes, analyses: analyses, llm: client}
}

// taskFor maps an analysis kind to its task instruction.
func taskFor(kind model.AnalysisKind) string {
	switch kind {
	case model.KindAnalyze:
		return llm.TaskAnalyze
	case model.KindImprove:
		return llm.TaskImprove
	case model.KindMatch:
		return llm.TaskMatch
	}
	return ""
}

func (s *analysisService) Create(ctx context.Context, resumeID string, kind model.AnalysisKind, jobDescription string) (*model.Analysis, error) {
	if resumeID == "" {
		return nil, ErrIDRequired
	}
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrJobDescriptionRequired
	}

	resume, err := s.resumes.FindByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	prompt := llm.AnalysisPrompt(jobDescription, resume.TextContent, taskFor(kind))
	response, err := s.llm.Complete(ctx, prompt, llm.CompletionOptions{SystemPrompt: llm.SystemPrompt})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompletion, err)
	}

	a := &model.Analysis{
		ID:             uuid.New().String(),
		ResumeID:       resume.ID,
		Kind:           kind,
		JobDescription: jobDescription,
		Response:       response,
		Model:          s.llm.Model(),
		CreatedAt:      time.Now().UTC(),
	}
	if kind == model.KindMatch {
		pct := match.ExtractPercentage(response)
		a.MatchPercentage = &pct
		a.Rating = match.Rating(pct)
	}

	stored, err := s.analyses.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// ListByResume returns paginated analyses for one resume.
func (s *analysisService) ListByResume(ctx context.Context, resumeID string, limit, offset int) (*AnalysisListResult, error) {
	if resumeID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.analyses.ListByResume(ctx, resumeID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &AnalysisListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns an analysis by ID.
func (s *analysisService) Get(ctx context.Context, id string) (*model.Analysis, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	a, err := s.analyses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return a, nil
}
