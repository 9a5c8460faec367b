package mocks

import (
	"context"

	"jobassist/internal/model"
	"jobassist/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Create(ctx context.Context, resumeID string, kind model.AnalysisKind, jobDescription string) (*model.Analysis, error) {
	args := m.Called(ctx, resumeID, kind, jobDescription)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Analysis), args.Error(1)
}

func (m *MockAnalysisService) ListByResume(ctx context.Context, resumeID string, limit, offset int) (*service.AnalysisListResult, error) {
	args := m.Called(ctx, resumeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalysisListResult), args.Error(1)
}

func (m *MockAnalysisService) Get(ctx context.Context, id string) (*model.Analysis, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Analysis), args.Error(1)
}
