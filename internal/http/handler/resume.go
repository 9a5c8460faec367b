package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobassist/internal/service"
)

// UploadResume handles multipart PDF uploads (field name: file).
//
// @Summary Upload a resume PDF
// @Tags resumes
// @Accept mpfd
// @Produce json
// @Param file formData file true "resume PDF"
// @Success 201 {object} model.Resume
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /resumes [post]
func UploadResume(svc service.ResumeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		res, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListResumes returns a paginated resume listing.
//
// @Summary List resumes
// @Tags resumes
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.ResumeListResult
// @Router /resumes [get]
func ListResumes(svc service.ResumeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetResume returns resume metadata plus its extracted text.
//
// @Summary Get a resume
// @Tags resumes
// @Produce json
// @Param id path string true "resume id"
// @Success 200 {object} model.Resume
// @Failure 404 {object} errorPayload
// @Router /resumes/{id} [get]
func GetResume(svc service.ResumeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DeleteResume removes the stored object and the resume row.
//
// @Summary Delete a resume
// @Tags resumes
// @Param id path string true "resume id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /resumes/{id} [delete]
func DeleteResume(svc service.ResumeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// PreviewResume renders the first page of the stored PDF as a PNG image.
//
// @Summary Preview the first page of a resume
// @Tags resumes
// @Produce png
// @Param id path string true "resume id"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Router /resumes/{id}/preview [get]
func PreviewResume(svc service.ResumeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		img, err := svc.Preview(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(img)
	}
}

// DownloadResume redirects to a time-limited presigned URL for the original PDF.
//
// @Summary Download the original resume PDF
// @Tags resumes
// @Param id path string true "resume id"
// @Success 302
// @Failure 404 {object} errorPayload
// @Router /resumes/{id}/download [get]
func DownloadResume(svc service.ResumeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := svc.DownloadURL(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Redirect(url, fiber.StatusFound)
	}
}
