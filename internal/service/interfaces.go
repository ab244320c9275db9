package service

import (
	"context"

	"github.com/avinashkumarr/studiobook/internal/domain"
)

// DraftService is the durable draft store's contract: root lifecycle,
// per-event upserts, and envelope storage for the reconciler's autosave.
type DraftService interface {
	CreateProjectRoot(ctx context.Context, root *domain.ProjectDraft) (draftID string, err error)
	FetchProjectRecord(ctx context.Context, id string) (*domain.ProjectDraft, error)
	FindProjectIDByName(ctx context.Context, name string) (string, error)
	UpsertEventPackage(ctx context.Context, draftID string, e *domain.EventPackage) (remoteID string, err error)
	ListEventPackages(ctx context.Context, draftID string) ([]*domain.EventPackage, error)

	GetDraftEnvelope(ctx context.Context, draftID string) ([]byte, error)
	UpdateDraftEnvelope(ctx context.Context, draftID string, payload []byte) error
	DeleteDraftEnvelope(ctx context.Context, draftID string) error

	// SubmitProject saves the given packages, promotes the root out of
	// draft state, and deletes the stored envelope in one transaction.
	SubmitProject(ctx context.Context, draftID string, events []*domain.EventPackage) error

	List(ctx context.Context, includeConfirmed bool) ([]*domain.ProjectDraft, error)
}

// CoordinatorService exposes the read-only coordinator directory.
type CoordinatorService interface {
	Directory(ctx context.Context, role domain.CoordinatorRole) ([]*domain.Coordinator, error)
}
