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
	"jobassist/internal/model"
	"jobassist/internal/repository"
)

var (
	ErrInvalidTone       = errors.New("invalid email tone")
	ErrColdEmailNotFound = errors.New("cold email not found")
)

// ColdEmailListResult is the service-level DTO for paginated cold emails.
type ColdEmailListResult struct {
	Items []model.ColdEmail `json:"data"`
	Total int               `json:"total"`
}

// ColdEmailService generates and stores cold emails for a resume and job description.
type ColdEmailService interface {
	// Create generates a cold email and persists it.
	// An empty tone defaults to formal.
	Create(ctx context.Context, resumeID, jobDescription, linkedin string, tone model.EmailTone) (*model.ColdEmail, error)

	// ListByResume returns cold emails for one resume using limit/offset and a total count.
	ListByResume(ctx context.Context, resumeID string, limit, offset int) (*ColdEmailListResult, error)

	// Get returns a single cold email by its ID.
	Get(ctx context.Context, id string) (*model.ColdEmail, error)
}

type coldEmailService struct {
	resumes repository.ResumeRepository
	emails  repository.ColdEmailRepository
	llm     llm.Client
}

// NewColdEmailService constructs a new ColdEmailService.
func NewColdEmailService(resumes repository.ResumeRepository, emails repository.ColdEmailRepository, client llm.Client) ColdEmailService {
	return &coldEmailService{resumes: resumes, emails: emails, llm: client}
}

func (s *coldEmailService) Create(ctx context.Context, resumeID, jobDescription, linkedin string, tone model.EmailTone) (*model.ColdEmail, error) {
	if resumeID == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrJobDescriptionRequired
	}
	if tone == "" {
		tone = model.ToneFormal
	}
	if !tone.Valid() {
		return nil, ErrInvalidTone
	}

	resume, err := s.resumes.FindByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	prompt := llm.ColdEmailPrompt(resume.TextContent, jobDescription, linkedin, string(tone))
	email, err := s.llm.Complete(ctx, prompt, llm.CompletionOptions{SystemPrompt: llm.SystemPrompt})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompletion, err)
	}

	e := &model.ColdEmail{
		ID:             uuid.New().String(),
		ResumeID:       resume.ID,
		JobDescription: jobDescription,
		LinkedIn:       linkedin,
		Tone:           tone,
		Email:          email,
		Model:          s.llm.Model(),
		CreatedAt:      time.Now().UTC(),
	}
	stored, err := s.emails.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// ListByResume returns paginated cold emails for one resume.
func (s *coldEmailService) ListByResume(ctx context.Context, resumeID string, limit, offset int) (*ColdEmailListResult, error) {
	if resumeID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.emails.ListByResume(ctx, resumeID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ColdEmailListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a cold email by ID.
func (s *coldEmailService) Get(ctx context.Context, id string) (*model.ColdEmail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	e, err := s.emails.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrColdEmailNotFound
		}
		return nil, err
	}
	return e, nil
}
