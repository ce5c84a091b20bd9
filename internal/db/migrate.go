package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are applied in order on every open. Statements must be
// idempotent (CREATE ... IF NOT EXISTS) or tolerated by Migrate.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		start_date TEXT,
		end_date   TEXT,
		milestone  INTEGER NOT NULL DEFAULT 0,
		progress   INTEGER NOT NULL DEFAULT 0,
		status     TEXT NOT NULL DEFAULT 'todo',
		category   TEXT NOT NULL DEFAULT '',
		assignee   TEXT NOT NULL DEFAULT '',
		priority   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS task_dependencies (
		successor_id   TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		predecessor_id TEXT NOT NULL,
		seq            INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (successor_id, predecessor_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_start_date ON tasks(start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_task_dependencies_successor ON task_dependencies(successor_id)`,
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
