package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobassist/docs"
	"jobassist/internal/config"
	"jobassist/internal/database"
	"jobassist/internal/database/migration"
	handlers "jobassist/internal/http/handler"
	"jobassist/internal/http/middleware"
	"jobassist/internal/llm"
	"jobassist/internal/otel"
	"jobassist/internal/pdf"
	"jobassist/internal/repository/postgres"
	"jobassist/internal/service"
	"jobassist/internal/storage"
)

// @title Resume Assist API
// @version 1.0
// @description PDF resume analysis and cold email generation service.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc := time.UTC

	// Tracing is optional: init degrades to a noop provider on exporter errors
	shutdownTracing, err := otel.Init(context.Background(), loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Apply schema migrations (idempotent)
	if err := migration.EnsureMigrated(context.Background(), db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Initialize the OpenRouter client and PDF processor
	llmClient, err := llm.NewOpenRouter(cfg.OpenRouter)
	if err != nil {
		log.Fatalf("failed to initialize llm client: %v", err)
	}
	pdfProc := pdf.NewMuPDF()

	// Initialize repositories and services
	resumeRepo := postgres.NewResumePostgres(db)
	analysisRepo := postgres.NewAnalysisPostgres(db)
	emailRepo := postgres.NewColdEmailPostgres(db)

	maxUploadBytes := int64(cfg.Upload.MaxSizeMB) * 1024 * 1024
	resumeSvc := service.NewResumeService(objStore, resumeRepo, pdfProc, maxUploadBytes)
	analysisSvc := service.NewAnalysisService(resumeRepo, analysisRepo, llmClient)
	emailSvc := service.NewColdEmailService(resumeRepo, emailRepo, llmClient)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(maxUploadBytes) + 1024*1024,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	// OpenTelemetry HTTP spans
	app.Use(otelfiber.Middleware())

	// Prometheus request metrics + /metrics endpoint
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to initialize prometheus middleware: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, resumeSvc, analysisSvc, emailSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
