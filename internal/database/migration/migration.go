package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_resumes",
		SQL: `CREATE TABLE IF NOT EXISTS resumes (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  text_content TEXT        NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_analyses",
		SQL: `CREATE TABLE IF NOT EXISTS analyses (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  resume_id        UUID        NOT NULL REFERENCES resumes (id) ON DELETE CASCADE,
  kind             TEXT        NOT NULL CHECK (kind IN ('analyze', 'improve', 'match')),
  job_description  TEXT        NOT NULL,
  response         TEXT        NOT NULL,
  match_percentage INT         CHECK (match_percentage BETWEEN 0 AND 100),
  rating           TEXT,
  model            TEXT        NOT NULL,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_cold_emails",
		SQL: `CREATE TABLE IF NOT EXISTS cold_emails (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  resume_id       UUID        NOT NULL REFERENCES resumes (id) ON DELETE CASCADE,
  job_description TEXT        NOT NULL,
  linkedin        TEXT        NOT NULL DEFAULT '',
  tone            TEXT        NOT NULL CHECK (tone IN ('formal', 'casual')),
  email           TEXT        NOT NULL,
  model           TEXT        NOT NULL,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_resumes_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_resumes_created_at ON resumes (created_at);`,
	},
	{
		Name: "create_index_analyses_resume_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_analyses_resume_id ON analyses (resume_id);`,
	},
	{
		Name: "create_index_analyses_kind",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_analyses_kind ON analyses (kind);`,
	},
	{
		Name: "create_index_cold_emails_resume_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cold_emails_resume_id ON cold_emails (resume_id);`,
	},
}

// EnsureMigrated checks if the 'resumes' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.resumes') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
