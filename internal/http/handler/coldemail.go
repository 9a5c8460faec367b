package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobassist/internal/model"
	"jobassist/internal/service"
)

// createColdEmailRequest is the body for POST /resumes/:id/cold-emails.
type createColdEmailRequest struct {
	JobDescription string `json:"job_description"`
	LinkedIn       string `json:"linkedin"`
	Tone           string `json:"tone"`
}

// CreateColdEmail generates a cold email for a resume and job description.
//
// @Summary Generate a cold email
// @Tags cold-emails
// @Accept json
// @Produce json
// @Param id path string true "resume id"
// @Param body body createColdEmailRequest true "cold email request"
// @Success 201 {object} model.ColdEmail
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /resumes/{id}/cold-emails [post]
func CreateColdEmail(svc service.ColdEmailService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req createColdEmailRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		e, err := svc.Create(c.UserContext(), id, req.JobDescription, req.LinkedIn, model.EmailTone(req.Tone))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

// ListResumeColdEmails lists generated cold emails for one resume.
//
// @Summary List cold emails for a resume
// @Tags cold-emails
// @Produce json
// @Param id path string true "resume id"
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.ColdEmailListResult
// @Router /resumes/{id}/cold-emails [get]
func ListResumeColdEmails(svc service.ColdEmailService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListByResume(c.UserContext(), id, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetColdEmail fetches one generated cold email.
//
// @Summary Get a cold email
// @Tags cold-emails
// @Produce json
// @Param id path string true "cold email id"
// @Success 200 {object} model.ColdEmail
// @Failure 404 {object} errorPayload
// @Router /cold-emails/{id} [get]
func GetColdEmail(svc service.ColdEmailService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		e, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(e)
	}
}

// DownloadColdEmail serves the email body as a text attachment.
//
// @Summary Download a cold email as text
// @Tags cold-emails
// @Produce plain
// @Param id path string true "cold email id"
// @Success 200 {string} string
// @Failure 404 {object} errorPayload
// @Router /cold-emails/{id}/download [get]
func DownloadColdEmail(svc service.ColdEmailService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		e, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="cold_email.txt"`)
		c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
		return c.SendString(e.Email)
	}
}
