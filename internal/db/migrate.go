package db

import (
	"database/sql"
	"fmt"
	"strings"
)

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

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		type            TEXT NOT NULL DEFAULT ''
		                CHECK(type IN ('','wedding','portrait','commercial','event','other')),
		client_name     TEXT NOT NULL DEFAULT '',
		client_email    TEXT NOT NULL DEFAULT '',
		client_phone    TEXT NOT NULL DEFAULT '',
		start_at        TEXT,
		start_confirmed INTEGER NOT NULL DEFAULT 0,
		end_at          TEXT,
		end_confirmed   INTEGER NOT NULL DEFAULT 0,
		template        TEXT NOT NULL DEFAULT '',
		page_cursor     INTEGER NOT NULL DEFAULT 1,
		status          TEXT NOT NULL DEFAULT 'draft'
		                CHECK(status IN ('draft','confirmed','archived')),
		is_draft        INTEGER NOT NULL DEFAULT 1,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_name ON projects(name)`,

	`CREATE TABLE IF NOT EXISTS event_packages (
		id                        TEXT PRIMARY KEY,
		project_id                TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		local_id                  TEXT NOT NULL DEFAULT '',
		type                      TEXT NOT NULL
		                          CHECK(type IN ('wedding','engagement','portrait','birthday','corporate','other')),
		type_other                TEXT NOT NULL DEFAULT '',
		photographers             INTEGER NOT NULL DEFAULT 0,
		photographer_kind         TEXT NOT NULL DEFAULT '',
		videographers             INTEGER NOT NULL DEFAULT 0,
		videographer_kind         TEXT NOT NULL DEFAULT '',
		days                      INTEGER NOT NULL DEFAULT 1,
		start_at                  TEXT NOT NULL,
		event_coordinator_id      TEXT REFERENCES coordinators(id),
		production_coordinator_id TEXT REFERENCES coordinators(id),
		notes                     TEXT NOT NULL DEFAULT '',
		checklist_json            TEXT NOT NULL DEFAULT '[]',
		created_at                TEXT NOT NULL,
		updated_at                TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_event_packages_project ON event_packages(project_id)`,

	`CREATE TABLE IF NOT EXISTS draft_envelopes (
		project_id TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS coordinators (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL CHECK(role IN ('event','production'))
	)`,

	// Seed the studio's coordinator directory.
	`INSERT OR IGNORE INTO coordinators (id, name, role) VALUES
		('ec-meera',  'Meera Pillai',   'event'),
		('ec-rohan',  'Rohan Desai',    'event'),
		('pc-asha',   'Asha Nair',      'production'),
		('pc-vikram', 'Vikram Shetty',  'production')`,
}
