package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobassist/internal/model"
	"jobassist/internal/service"
)

// createAnalysisRequest is the body for POST /resumes/:id/analyses.
type createAnalysisRequest struct {
	Kind           string `json:"kind"`
	JobDescription string `json:"job_description"`
}

// CreateAnalysis runs an LLM analysis of a resume against a job description.
//
// @Summary Analyze a resume against a job description
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "resume id"
// @Param body body createAnalysisRequest true "analysis request"
// @Success 201 {object} model.Analysis
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /resumes/{id}/analyses [post]
func CreateAnalysis(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req createAnalysisRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		a, err := svc.Create(c.UserContext(), id, model.AnalysisKind(req.Kind), req.JobDescription)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// ListResumeAnalyses lists stored analyses for one resume.
//
// @Summary List analyses for a resume
// @Tags analyses
// @Produce json
// @Param id path string true "resume id"
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.AnalysisListResult
// @Router /resumes/{id}/analyses [get]
func ListResumeAnalyses(svc service.AnalysisService) fiber.Handler {
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

// GetAnalysis fetches one stored analysis.
//
// @Summary Get an analysis
// @Tags analyses
// @Produce json
// @Param id path string true "analysis id"
// @Success 200 {object} model.Analysis
// @Failure 404 {object} errorPayload
// @Router /analyses/{id} [get]
func GetAnalysis(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		a, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	}
}
