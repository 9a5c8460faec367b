package mocks

import (
	"context"

	"jobassist/internal/model"
	"jobassist/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockColdEmailRepository struct {
	mock.Mock
}

func (m *MockColdEmailRepository) Create(ctx context.Context, e *model.ColdEmail) (*model.ColdEmail, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ColdEmail), args.Error(1)
}

func (m *MockColdEmailRepository) FindByID(ctx context.Context, id string) (*model.ColdEmail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ColdEmail), args.Error(1)
}

func (m *MockColdEmailRepository) ListByResume(ctx context.Context, resumeID string, pq repository.PageQuery) (*repository.PageResult[model.ColdEmail], error) {
	args := m.Called(ctx, resumeID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ColdEmail]), args.Error(1)
}
