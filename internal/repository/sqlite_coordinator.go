package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avinashkumarr/studiobook/internal/db"
	"github.com/avinashkumarr/studiobook/internal/domain"
)

// SQLiteCoordinatorRepo reads the seeded coordinator directory.
type SQLiteCoordinatorRepo struct {
	db db.DBTX
}

// NewSQLiteCoordinatorRepo creates a new SQLiteCoordinatorRepo.
func NewSQLiteCoordinatorRepo(conn db.DBTX) *SQLiteCoordinatorRepo {
	return &SQLiteCoordinatorRepo{db: conn}
}

func (r *SQLiteCoordinatorRepo) GetByID(ctx context.Context, id string) (*domain.Coordinator, error) {
	var c domain.Coordinator
	var roleStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, role FROM coordinators WHERE id = ?`, id).Scan(&c.ID, &c.Name, &roleStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("coordinator %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("loading coordinator: %w", err)
	}
	c.Role = domain.CoordinatorRole(roleStr)
	return &c, nil
}

func (r *SQLiteCoordinatorRepo) ListByRole(ctx context.Context, role domain.CoordinatorRole) ([]*domain.Coordinator, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, role FROM coordinators WHERE role = ? ORDER BY name`, string(role))
	if err != nil {
		return nil, fmt.Errorf("listing coordinators: %w", err)
	}
	defer rows.Close()

	var coords []*domain.Coordinator
	for rows.Next() {
		var c domain.Coordinator
		var roleStr string
		if err := rows.Scan(&c.ID, &c.Name, &roleStr); err != nil {
			return nil, fmt.Errorf("scanning coordinator: %w", err)
		}
		c.Role = domain.CoordinatorRole(roleStr)
		coords = append(coords, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating coordinators: %w", err)
	}
	return coords, nil
}
