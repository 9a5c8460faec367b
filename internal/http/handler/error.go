package handler

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobassist/internal/http/middleware"
	"jobassist/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates service-layer sentinel errors into HTTP responses.
// Unrecognized errors collapse into 500 without exposing details.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resume not found")
	case errors.Is(err, service.ErrAnalysisNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "analysis not found")
	case errors.Is(err, service.ErrColdEmailNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "cold email not found")
	case errors.Is(err, service.ErrNotPDF):
		return writeError(c, fiber.StatusBadRequest, "NOT_PDF", "only PDF resumes are accepted")
	case errors.Is(err, service.ErrEmptyFile):
		return writeError(c, fiber.StatusBadRequest, "EMPTY_FILE", "uploaded file is empty")
	case errors.Is(err, service.ErrFileTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "uploaded file exceeds the size limit")
	case errors.Is(err, service.ErrUnreadablePDF):
		return writeError(c, fiber.StatusUnprocessableEntity, "UNREADABLE_PDF", "could not read pdf")
	case errors.Is(err, service.ErrInvalidKind):
		return writeError(c, fiber.StatusBadRequest, "INVALID_KIND", "kind must be one of analyze, improve, match")
	case errors.Is(err, service.ErrInvalidTone):
		return writeError(c, fiber.StatusBadRequest, "INVALID_TONE", "tone must be formal or casual")
	case errors.Is(err, service.ErrJobDescriptionRequired):
		return writeError(c, fiber.StatusBadRequest, "JOB_DESCRIPTION_REQUIRED", "job_description is required")
	case errors.Is(err, service.ErrCompletion):
		return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "language model request failed")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
