package repository

import (
	"context"

	"github.com/avinashkumarr/studiobook/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.ProjectDraft) error
	GetByID(ctx context.Context, id string) (*domain.ProjectDraft, error)
	// FindIDByName resolves the most recently created root matching name.
	FindIDByName(ctx context.Context, name string) (string, error)
	Update(ctx context.Context, p *domain.ProjectDraft) error
	// Promote marks the root non-draft with the given status.
	Promote(ctx context.Context, id string) error
	List(ctx context.Context, includeConfirmed bool) ([]*domain.ProjectDraft, error)
	Delete(ctx context.Context, id string) error
}

type EventPackageRepo interface {
	// Upsert inserts or, when e.RemoteID is set, updates the stored row.
	// It returns the remote id.
	Upsert(ctx context.Context, projectID string, e *domain.EventPackage) (string, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.EventPackage, error)
	Delete(ctx context.Context, id string) error
}

type EnvelopeRepo interface {
	Get(ctx context.Context, projectID string) ([]byte, error)
	Put(ctx context.Context, projectID string, payload []byte) error
	Delete(ctx context.Context, projectID string) error
}

type CoordinatorRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Coordinator, error)
	ListByRole(ctx context.Context, role domain.CoordinatorRole) ([]*domain.Coordinator, error)
}
