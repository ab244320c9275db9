package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avinashkumarr/studiobook/internal/db"
	"github.com/avinashkumarr/studiobook/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo over a SQLite connection or
// transaction.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, name, type, client_name, client_email, client_phone,
	start_at, start_confirmed, end_at, end_confirmed,
	template, page_cursor, status, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.ProjectDraft) error {
	query := `INSERT INTO projects (id, name, type, client_name, client_email, client_phone,
		start_at, start_confirmed, end_at, end_confirmed,
		template, page_cursor, status, is_draft, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.DraftID,
		p.Name,
		string(p.Type),
		p.ClientName,
		p.ClientEmail,
		p.ClientPhone,
		nullableTimeToString(p.StartAt, time.RFC3339),
		boolToInt(p.StartConfirmed),
		nullableTimeToString(p.EndAt, time.RFC3339),
		boolToInt(p.EndConfirmed),
		p.Template,
		p.PageCursor,
		string(p.Status),
		boolToInt(p.Status == domain.ProjectDraftStatus),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.ProjectDraft, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanProject(row)
}

func (r *SQLiteProjectRepo) FindIDByName(ctx context.Context, name string) (string, error) {
	query := `SELECT id FROM projects WHERE name = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`
	var id string
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("project named %q: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("resolving project by name: %w", err)
	}
	return id, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.ProjectDraft) error {
	query := `UPDATE projects SET name = ?, type = ?, client_name = ?, client_email = ?, client_phone = ?,
		start_at = ?, start_confirmed = ?, end_at = ?, end_confirmed = ?,
		template = ?, page_cursor = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		string(p.Type),
		p.ClientName,
		p.ClientEmail,
		p.ClientPhone,
		nullableTimeToString(p.StartAt, time.RFC3339),
		boolToInt(p.StartConfirmed),
		nullableTimeToString(p.EndAt, time.RFC3339),
		boolToInt(p.EndConfirmed),
		p.Template,
		p.PageCursor,
		time.Now().UTC().Format(time.RFC3339),
		p.DraftID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Promote(ctx context.Context, id string) error {
	query := `UPDATE projects SET status = 'confirmed', is_draft = 0, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("promoting project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("promoting project %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeConfirmed bool) ([]*domain.ProjectDraft, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE is_draft = 1 ORDER BY created_at`
	if includeConfirmed {
		query = `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.ProjectDraft
	for rows.Next() {
		p, err := scanProjectFromRows(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func scanProject(row *sql.Row) (*domain.ProjectDraft, error) {
	var p domain.ProjectDraft
	var typeStr, statusStr, createdAtStr, updatedAtStr string
	var startAtStr, endAtStr sql.NullString
	var startConfirmed, endConfirmed int

	err := row.Scan(
		&p.DraftID, &p.Name, &typeStr,
		&p.ClientName, &p.ClientEmail, &p.ClientPhone,
		&startAtStr, &startConfirmed, &endAtStr, &endConfirmed,
		&p.Template, &p.PageCursor, &statusStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return projectFromScan(&p, typeStr, statusStr, createdAtStr, updatedAtStr, startAtStr, endAtStr, startConfirmed, endConfirmed)
}

func scanProjectFromRows(rows *sql.Rows) (*domain.ProjectDraft, error) {
	var p domain.ProjectDraft
	var typeStr, statusStr, createdAtStr, updatedAtStr string
	var startAtStr, endAtStr sql.NullString
	var startConfirmed, endConfirmed int

	err := rows.Scan(
		&p.DraftID, &p.Name, &typeStr,
		&p.ClientName, &p.ClientEmail, &p.ClientPhone,
		&startAtStr, &startConfirmed, &endAtStr, &endConfirmed,
		&p.Template, &p.PageCursor, &statusStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}
	return projectFromScan(&p, typeStr, statusStr, createdAtStr, updatedAtStr, startAtStr, endAtStr, startConfirmed, endConfirmed)
}

func projectFromScan(p *domain.ProjectDraft, typeStr, statusStr, createdAtStr, updatedAtStr string, startAtStr, endAtStr sql.NullString, startConfirmed, endConfirmed int) (*domain.ProjectDraft, error) {
	p.Type = domain.ProjectType(typeStr)
	p.Status = domain.ProjectStatus(statusStr)
	p.StartConfirmed = intToBool(startConfirmed)
	p.EndConfirmed = intToBool(endConfirmed)
	p.StartAt = parseNullableTime(startAtStr, time.RFC3339)
	p.EndAt = parseNullableTime(endAtStr, time.RFC3339)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return p, nil
}
