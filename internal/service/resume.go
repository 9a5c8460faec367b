package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobassist/internal/model"
	"jobassist/internal/pdf"
	"jobassist/internal/repository"
	"jobassist/internal/storage"
)

var (
	ErrIDRequired    = errors.New("id is required")
	ErrNotFound      = errors.New("resume not found")
	ErrReaderNil     = errors.New("reader is nil")
	ErrNotPDF        = errors.New("only PDF resumes are accepted")
	ErrEmptyFile     = errors.New("uploaded file is empty")
	ErrFileTooLarge  = errors.New("uploaded file exceeds the size limit")
	ErrUnreadablePDF = errors.New("could not read pdf")
)

// presignExpiry bounds how long a download link stays valid.
const presignExpiry = 15 * time.Minute

// ResumeListResult is the service-level DTO for paginated resumes.
type ResumeListResult struct {
	Items []model.Resume `json:"data"`
	Total int            `json:"total"`
}

// ResumeService defines the use cases for handling uploaded resumes.
type ResumeService interface {
	// Upload validates the PDF, extracts its text, uploads the content to object
	// storage, saves metadata to DB, and rolls back storage if the DB save fails.
	// - originalFilename is used only to extract extension; stored filename will be UUID + original extension.
	Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Resume, error)

	// List returns resumes using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*ResumeListResult, error)

	// Get returns a single resume by its ID.
	Get(ctx context.Context, id string) (*model.Resume, error)

	// Delete removes a resume by ID from both storage and repository.
	Delete(ctx context.Context, id string) error

	// Preview renders the first page of the stored PDF as PNG bytes.
	Preview(ctx context.Context, id string) ([]byte, error)

	// DownloadURL returns a time-limited presigned URL for the original PDF.
	DownloadURL(ctx context.Context, id string) (string, error)
}

// resumeService is a concrete implementation of ResumeService.
type resumeService struct {
	store    storage.Storage
	repo     repository.ResumeRepository
	pdfs     pdf.Processor
	maxBytes int64
}

// NewResumeService constructs a new ResumeService.
// maxBytes limits upload size; zero or negative disables the limit.
func NewResumeService(store storage.Storage, repo repository.ResumeRepository, pdfs pdf.Processor, maxBytes int64) ResumeService {
	return &resumeService{store: store, repo: repo, pdfs: pdfs, maxBytes: maxBytes}
}

// isPDF accepts application/pdf uploads, falling back to the file extension
// for clients that send application/octet-stream.
func isPDF(filename, contentType string) bool {
	if strings.EqualFold(contentType, "application/pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

func (s *resumeService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Resume, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if !isPDF(originalFilename, contentType) {
		return nil, ErrNotPDF
	}

	// The bytes are needed twice (text extraction and storage upload),
	// so the upload is buffered up to the configured limit.
	var reader io.Reader = r
	if s.maxBytes > 0 {
		reader = io.LimitReader(r, s.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	text, err := s.pdfs.ExtractText(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}

	// Generate filename using UUID + extension
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if ext == "" {
		ext = ".pdf"
	}
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("resumes", genName))

	// Upload to object storage
	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "application/pdf",
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	// Save metadata + extracted text to database
	res := &model.Resume{
		ID:          uuid.New().String(),
		Filename:    genName,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: "application/pdf",
		TextContent: text,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, res)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated resumes without exposing repository types.
func (s *resumeService) List(ctx context.Context, limit, offset int) (*ResumeListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ResumeListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a resume by ID.
func (s *resumeService) Get(ctx context.Context, id string) (*model.Resume, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// Delete removes a resume from storage, then deletes its record.
func (s *resumeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	// Find the resume to get its storage path
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, res.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	// Delete DB row (repository ignores missing row errors as per contract)
	return s.repo.Delete(ctx, id)
}

// Preview fetches the stored PDF and renders its first page as PNG.
func (s *resumeService) Preview(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rc, _, err := s.store.Get(ctx, res.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("fetch from storage: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read from storage: %w", err)
	}

	img, err := s.pdfs.RenderFirstPagePNG(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}
	return img, nil
}

// DownloadURL returns a presigned URL for the original PDF.
func (s *resumeService) DownloadURL(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	url, err := s.store.PresignGet(ctx, res.StoragePath, presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return url, nil
}
