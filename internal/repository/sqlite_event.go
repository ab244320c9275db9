package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avinashkumarr/studiobook/internal/db"
	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/google/uuid"
)

// SQLiteEventPackageRepo implements EventPackageRepo.
type SQLiteEventPackageRepo struct {
	db db.DBTX
}

// NewSQLiteEventPackageRepo creates a new SQLiteEventPackageRepo.
func NewSQLiteEventPackageRepo(conn db.DBTX) *SQLiteEventPackageRepo {
	return &SQLiteEventPackageRepo{db: conn}
}

func (r *SQLiteEventPackageRepo) Upsert(ctx context.Context, projectID string, e *domain.EventPackage) (string, error) {
	checklist, err := json.Marshal(e.Checklist)
	if err != nil {
		return "", fmt.Errorf("encoding checklist: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	if e.RemoteID != "" {
		query := `UPDATE event_packages SET type = ?, type_other = ?,
			photographers = ?, photographer_kind = ?, videographers = ?, videographer_kind = ?,
			days = ?, start_at = ?, event_coordinator_id = ?, production_coordinator_id = ?,
			notes = ?, checklist_json = ?, updated_at = ?
			WHERE id = ? AND project_id = ?`
		res, err := r.db.ExecContext(ctx, query,
			string(e.Type), e.TypeOther,
			e.Photographers, e.PhotographerKind, e.Videographers, e.VideographerKind,
			e.Days, e.StartAt.UTC().Format(time.RFC3339),
			nullableString(e.EventCoordinatorID), nullableString(e.ProductionCoordinatorID),
			e.Notes, string(checklist), now,
			e.RemoteID, projectID,
		)
		if err != nil {
			return "", fmt.Errorf("updating event package: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			return e.RemoteID, nil
		}
		// Remote id unknown to the store (e.g. stale envelope); insert fresh.
	}

	id := uuid.New().String()
	query := `INSERT INTO event_packages (id, project_id, local_id, type, type_other,
		photographers, photographer_kind, videographers, videographer_kind,
		days, start_at, event_coordinator_id, production_coordinator_id,
		notes, checklist_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		id, projectID, e.LocalID, string(e.Type), e.TypeOther,
		e.Photographers, e.PhotographerKind, e.Videographers, e.VideographerKind,
		e.Days, e.StartAt.UTC().Format(time.RFC3339),
		nullableString(e.EventCoordinatorID), nullableString(e.ProductionCoordinatorID),
		e.Notes, string(checklist), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("inserting event package: %w", err)
	}
	return id, nil
}

func (r *SQLiteEventPackageRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.EventPackage, error) {
	query := `SELECT id, local_id, type, type_other,
		photographers, photographer_kind, videographers, videographer_kind,
		days, start_at, event_coordinator_id, production_coordinator_id,
		notes, checklist_json
		FROM event_packages WHERE project_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing event packages: %w", err)
	}
	defer rows.Close()

	var events []*domain.EventPackage
	for rows.Next() {
		var e domain.EventPackage
		var typeStr, startAtStr, checklistJSON string
		var eventCoord, prodCoord sql.NullString

		err := rows.Scan(
			&e.RemoteID, &e.LocalID, &typeStr, &e.TypeOther,
			&e.Photographers, &e.PhotographerKind, &e.Videographers, &e.VideographerKind,
			&e.Days, &startAtStr, &eventCoord, &prodCoord,
			&e.Notes, &checklistJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning event package: %w", err)
		}
		e.Type = domain.EventType(typeStr)
		startAt, err := time.Parse(time.RFC3339, startAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing start_at: %w", err)
		}
		e.StartAt = &startAt
		e.EventCoordinatorID = stringPtrFromNull(eventCoord)
		e.ProductionCoordinatorID = stringPtrFromNull(prodCoord)
		if err := json.Unmarshal([]byte(checklistJSON), &e.Checklist); err != nil {
			return nil, fmt.Errorf("decoding checklist: %w", err)
		}
		e.NotesDraft = e.Notes
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event packages: %w", err)
	}
	return events, nil
}

func (r *SQLiteEventPackageRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM event_packages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting event package: %w", err)
	}
	return nil
}
