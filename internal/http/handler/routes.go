package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"jobassist/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; all business logic lives in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, resumeSvc service.ResumeService, analysisSvc service.AnalysisService, emailSvc service.ColdEmailService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health: DB connectivity check plus a bare liveness probe
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Resumes
	app.Post("/resumes", UploadResume(resumeSvc))
	app.Get("/resumes", ListResumes(resumeSvc))
	app.Get("/resumes/:id", GetResume(resumeSvc))
	app.Delete("/resumes/:id", DeleteResume(resumeSvc))
	app.Get("/resumes/:id/preview", PreviewResume(resumeSvc))
	app.Get("/resumes/:id/download", DownloadResume(resumeSvc))

	// Analyses
	app.Post("/resumes/:id/analyses", CreateAnalysis(analysisSvc))
	app.Get("/resumes/:id/analyses", ListResumeAnalyses(analysisSvc))
	app.Get("/analyses/:id", GetAnalysis(analysisSvc))

	// Cold emails
	app.Post("/resumes/:id/cold-emails", CreateColdEmail(emailSvc))
	app.Get("/resumes/:id/cold-emails", ListResumeColdEmails(emailSvc))
	app.Get("/cold-emails/:id", GetColdEmail(emailSvc))
	app.Get("/cold-emails/:id/download", DownloadColdEmail(emailSvc))
}
