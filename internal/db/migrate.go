package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		org_id     TEXT NOT NULL,
		key        TEXT NOT NULL,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(org_id, key)
	)`,

	`CREATE TABLE IF NOT EXISTS sprints (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'PLANNED'
		           CHECK(status IN ('PLANNED','ACTIVE','COMPLETED')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS issues (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		sprint_id   TEXT REFERENCES sprints(id) ON DELETE SET NULL,
		title       TEXT NOT NULL,
		description TEXT,
		status      TEXT NOT NULL
		            CHECK(status IN ('TODO','IN_PROGRESS','IN_REVIEW','DONE')),
		priority    TEXT NOT NULL
		            CHECK(priority IN ('LOW','MEDIUM','HIGH','URGENT')),
		reporter_id TEXT NOT NULL REFERENCES users(id),
		assignee_id TEXT REFERENCES users(id),
		order_idx   INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_issues_column
		ON issues(project_id, status, order_idx)`,

	`CREATE INDEX IF NOT EXISTS idx_issues_sprint ON issues(sprint_id)`,

	// Allocator state for per-column order values. Seeded lazily from the
	// existing max order_idx on first allocation for a column.
	`CREATE TABLE IF NOT EXISTS issue_sequences (
		project_id TEXT NOT NULL,
		status     TEXT NOT NULL,
		next_order INTEGER NOT NULL,
		PRIMARY KEY (project_id, status)
	)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
