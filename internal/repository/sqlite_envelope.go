package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avinashkumarr/studiobook/internal/db"
)

// SQLiteEnvelopeRepo stores the serialized draft envelope, one row per
// project id.
type SQLiteEnvelopeRepo struct {
	db db.DBTX
}

// NewSQLiteEnvelopeRepo creates a new SQLiteEnvelopeRepo.
func NewSQLiteEnvelopeRepo(conn db.DBTX) *SQLiteEnvelopeRepo {
	return &SQLiteEnvelopeRepo{db: conn}
}

func (r *SQLiteEnvelopeRepo) Get(ctx context.Context, projectID string) ([]byte, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM draft_envelopes WHERE project_id = ?`, projectID).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("envelope for %s: %w", projectID, ErrNotFound)
		}
		return nil, fmt.Errorf("loading envelope: %w", err)
	}
	return []byte(payload), nil
}

func (r *SQLiteEnvelopeRepo) Put(ctx context.Context, projectID string, payload []byte) error {
	query := `INSERT INTO draft_envelopes (project_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, projectID, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("storing envelope: %w", err)
	}
	return nil
}

func (r *SQLiteEnvelopeRepo) Delete(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM draft_envelopes WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("deleting envelope: %w", err)
	}
	return nil
}
