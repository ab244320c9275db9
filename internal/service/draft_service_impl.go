package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avinashkumarr/studiobook/internal/db"
	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/avinashkumarr/studiobook/internal/repository"
	"github.com/google/uuid"
)

type draftService struct {
	projects     repository.ProjectRepo
	events       repository.EventPackageRepo
	envelopes    repository.EnvelopeRepo
	coordinators repository.CoordinatorRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

// NewDraftService wires the durable draft store over the SQLite repos.
func NewDraftService(projects repository.ProjectRepo, events repository.EventPackageRepo,
	envelopes repository.EnvelopeRepo, coordinators repository.CoordinatorRepo,
	uow db.UnitOfWork, observers ...UseCaseObserver) DraftService {
	return &draftService{
		projects:     projects,
		events:       events,
		envelopes:    envelopes,
		coordinators: coordinators,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *draftService) CreateProjectRoot(ctx context.Context, root *domain.ProjectDraft) (string, error) {
	start := time.Now()
	id, err := s.createProjectRoot(ctx, root)
	s.observe(ctx, "create_project_root", start, err, map[string]any{"draft_id": id})
	return id, err
}

func (s *draftService) createProjectRoot(ctx context.Context, root *domain.ProjectDraft) (string, error) {
	if err := root.ValidateRequired(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := domain.ValidateEmail(root.ClientEmail); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := domain.ValidatePhone(root.ClientPhone); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	stored := *root
	if stored.DraftID == "" {
		stored.DraftID = uuid.New().String()
	}
	now := time.Now().UTC()
	stored.Status = domain.ProjectDraftStatus
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if err := s.projects.Create(ctx, &stored); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	return stored.DraftID, nil
}

func (s *draftService) FetchProjectRecord(ctx context.Context, id string) (*domain.ProjectDraft, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	return p, nil
}

func (s *draftService) FindProjectIDByName(ctx context.Context, name string) (string, error) {
	id, err := s.projects.FindIDByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("project named %q: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	return id, nil
}

func (s *draftService) UpsertEventPackage(ctx context.Context, draftID string, e *domain.EventPackage) (string, error) {
	start := time.Now()
	id, err := s.upsertEventPackage(ctx, draftID, e)
	s.observe(ctx, "upsert_event_package", start, err, map[string]any{"draft_id": draftID, "remote_id": id})
	return id, err
}

func (s *draftService) upsertEventPackage(ctx context.Context, draftID string, e *domain.EventPackage) (string, error) {
	if !e.RequiredFieldsSet() {
		return "", fmt.Errorf("%w: event package needs an event type and a start date", ErrValidation)
	}
	if !domain.ValidEventTypes[string(e.Type)] {
		return "", fmt.Errorf("%w: event type %q is not accepted", ErrValidation, e.Type)
	}

	if _, err := s.projects.GetByID(ctx, draftID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: project root %s", ErrForeignKey, draftID)
		}
		return "", fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	for _, ref := range []*string{e.EventCoordinatorID, e.ProductionCoordinatorID} {
		if ref == nil {
			continue
		}
		if _, err := s.coordinators.GetByID(ctx, *ref); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", fmt.Errorf("%w: coordinator %s", ErrForeignKey, *ref)
			}
			return "", fmt.Errorf("%w: %v", ErrTransientStore, err)
		}
	}

	remoteID, err := s.events.Upsert(ctx, draftID, e)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	return remoteID, nil
}

func (s *draftService) ListEventPackages(ctx context.Context, draftID string) ([]*domain.EventPackage, error) {
	events, err := s.events.ListByProject(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	return events, nil
}

func (s *draftService) GetDraftEnvelope(ctx context.Context, draftID string) ([]byte, error) {
	payload, err := s.envelopes.Get(ctx, draftID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("envelope for %s: %w", draftID, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	return payload, nil
}

func (s *draftService) UpdateDraftEnvelope(ctx context.Context, draftID string, payload []byte) error {
	if err := s.envelopes.Put(ctx, draftID, payload); err != nil {
		return fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	return nil
}

func (s *draftService) DeleteDraftEnvelope(ctx context.Context, draftID string) error {
	if err := s.envelopes.Delete(ctx, draftID); err != nil {
		return fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	return nil
}

func (s *draftService) SubmitProject(ctx context.Context, draftID string, events []*domain.EventPackage) error {
	start := time.Now()
	err := s.submitProject(ctx, draftID, events)
	s.observe(ctx, "submit_project", start, err, map[string]any{"draft_id": draftID, "events": len(events)})
	return err
}

func (s *draftService) submitProject(ctx context.Context, draftID string, events []*domain.EventPackage) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		eventRepo := repository.NewSQLiteEventPackageRepo(tx)
		envelopes := repository.NewSQLiteEnvelopeRepo(tx)

		for _, e := range events {
			if !e.RequiredFieldsSet() {
				continue
			}
			if _, err := eventRepo.Upsert(ctx, draftID, e); err != nil {
				return err
			}
		}
		if err := projects.Promote(ctx, draftID); err != nil {
			return err
		}
		return envelopes.Delete(ctx, draftID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: project root %s", ErrForeignKey, draftID)
		}
		return fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	return nil
}

func (s *draftService) List(ctx context.Context, includeConfirmed bool) ([]*domain.ProjectDraft, error) {
	return s.projects.List(ctx, includeConfirmed)
}

func (s *draftService) observe(ctx context.Context, name string, start time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: start,
	})
}
