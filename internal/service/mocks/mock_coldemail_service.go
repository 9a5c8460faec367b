package mocks

import (
	"context"

	"jobassist/internal/model"
	"jobassist/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockColdEmailService struct {
	mock.Mock
}

func (m *MockColdEmailService) Create(ctx context.Context, resumeID, jobDescription, linkedin string, tone model.EmailTone) (*model.ColdEmail, error) {
	args := m.Called(ctx, resumeID, jobDescription, linkedin, tone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ColdEmail), args.Error(1)
}

func (m *MockColdEmailService) ListByResume(ctx context.Context, resumeID string, limit, offset int) (*service.ColdEmailListResult, error) {
	args := m.Called(ctx, resumeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ColdEmailListResult), args.Error(1)
}

func (m *MockColdEmailService) Get(ctx context.Context, id string) (*model.ColdEmail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ColdEmail), args.Error(1)
}
