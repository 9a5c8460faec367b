package mocks

import (
	"context"
	"io"

	"jobassist/internal/model"
	"jobassist/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockResumeService struct {
	mock.Mock
}

func (m *MockResumeService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Resume, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resume), args.Error(1)
}

func (m *MockResumeService) List(ctx context.Context, limit, offset int) (*service.ResumeListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResumeListResult), args.Error(1)
}

func (m *MockResumeService) Get(ctx context.Context, id string) (*model.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resume), args.Error(1)
}

func (m *MockResumeService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResumeService) Preview(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockResumeService) DownloadURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
