package draft

import (
	"errors"
	"fmt"
	"time"

	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/google/uuid"
)

// ErrEndBeforeStart is returned when a patch would set the end date before
// the current start date.
var ErrEndBeforeStart = errors.New("end date must not precede start date")

// ErrEventNotFound is returned when a local id does not match any package.
var ErrEventNotFound = errors.New("event package not found")

// Store is the session's authoritative in-memory copy of the project root
// and its ordered event packages, with a per-event saved snapshot for dirty
// tracking. It is single-owner by convention: only the wizard controller
// mutates it, from one goroutine.
type Store struct {
	root      *domain.ProjectDraft
	events    []*domain.EventPackage
	snapshots map[string]*EventSnapshot
}

// NewStore returns a store with an empty root on page 1.
func NewStore() *Store {
	return &Store{
		root: &domain.ProjectDraft{
			PageCursor: 1,
			Status:     domain.ProjectDraftStatus,
			CreatedAt:  time.Now().UTC(),
		},
		snapshots: make(map[string]*EventSnapshot),
	}
}

// Root returns the live project root.
func (s *Store) Root() *domain.ProjectDraft { return s.root }

// Events returns the ordered live event collection.
func (s *Store) Events() []*domain.EventPackage { return s.events }

// Event returns the package with the given local id.
func (s *Store) Event(localID string) (*domain.EventPackage, bool) {
	for _, e := range s.events {
		if e.LocalID == localID {
			return e, true
		}
	}
	return nil, false
}

// SavedSnapshot returns the last-saved snapshot for a package, or nil when
// it has never been saved.
func (s *Store) SavedSnapshot(localID string) *EventSnapshot {
	return s.snapshots[localID]
}

// IsDirty reports whether the package with localID has unsaved changes.
func (s *Store) IsDirty(localID string) bool {
	e, ok := s.Event(localID)
	if !ok {
		return false
	}
	return IsDirty(e, s.snapshots[localID])
}

// DirtyMap returns the per-event dirty flags keyed by local id.
func (s *Store) DirtyMap() map[string]bool {
	out := make(map[string]bool, len(s.events))
	for _, e := range s.events {
		out[e.LocalID] = IsDirty(e, s.snapshots[e.LocalID])
	}
	return out
}

// CreateRoot populates the root's required fields. It validates but does not
// persist; the controller promotes the root remotely on page 1 -> 2.
func (s *Store) CreateRoot(name string, typ domain.ProjectType) (*domain.ProjectDraft, error) {
	s.root.Name = name
	s.root.Type = typ
	if err := s.root.ValidateRequired(); err != nil {
		return nil, err
	}
	s.root.UpdatedAt = time.Now().UTC()
	return s.root, nil
}

// SetDraftID records the durable identifier after the first successful
// remote create. It is a no-op once assigned.
func (s *Store) SetDraftID(id string) {
	if s.root.DraftID == "" {
		s.root.DraftID = id
	}
}

// SetPage moves the page cursor. Range checking is the controller's job.
func (s *Store) SetPage(n int) {
	s.root.PageCursor = n
}

// UpdateRoot applies a patch to the root. An end date preceding the current
// start date is rejected outright; a start date moving past an existing end
// date clears the end date instead, because clearing preserves the user's
// new start rather than blocking it.
func (s *Store) UpdateRoot(p RootPatch) error {
	r := s.root

	if p.ClientEmail != nil {
		if err := domain.ValidateEmail(*p.ClientEmail); err != nil {
			return err
		}
	}
	if p.ClientPhone != nil {
		if err := domain.ValidatePhone(*p.ClientPhone); err != nil {
			return err
		}
	}

	// Resolve the date pair the patch would produce before touching anything.
	newStart := r.StartAt
	if p.ClearStart {
		newStart = nil
	} else if p.StartAt != nil {
		t := *p.StartAt
		newStart = &t
	}
	newEnd := r.EndAt
	if p.ClearEnd {
		newEnd = nil
	} else if p.EndAt != nil {
		t := *p.EndAt
		newEnd = &t
	}

	if p.EndAt != nil && newEnd != nil && newStart != nil && newEnd.Before(*newStart) {
		return fmt.Errorf("setting end %s: %w", newEnd.Format(time.RFC3339), ErrEndBeforeStart)
	}
	if p.StartAt != nil && newStart != nil && newEnd != nil && newEnd.Before(*newStart) {
		// Start moved past the existing end: clear the end.
		newEnd = nil
		r.EndConfirmed = false
	}

	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.ClientName != nil {
		r.ClientName = *p.ClientName
	}
	if p.ClientEmail != nil {
		r.ClientEmail = *p.ClientEmail
	}
	if p.ClientPhone != nil {
		r.ClientPhone = *p.ClientPhone
	}
	if p.Template != nil {
		r.Template = *p.Template
	}
	r.StartAt = newStart
	r.EndAt = newEnd
	if p.StartConfirmed != nil {
		r.StartConfirmed = *p.StartConfirmed
	}
	if p.EndConfirmed != nil && r.EndAt != nil {
		r.EndConfirmed = *p.EndConfirmed
	}
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// AddEvent appends an empty package with a fresh local id. Display naming
// ("Event Package N") is a presentation concern and not assigned here.
func (s *Store) AddEvent() *domain.EventPackage {
	e := &domain.EventPackage{
		LocalID: uuid.New().String(),
		Days:    1,
	}
	s.events = append(s.events, e)
	return e
}

// UpdateEvent applies a patch to one package.
func (s *Store) UpdateEvent(localID string, p EventPatch) error {
	e, ok := s.Event(localID)
	if !ok {
		return fmt.Errorf("updating event %s: %w", localID, ErrEventNotFound)
	}

	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.TypeOther != nil {
		e.TypeOther = *p.TypeOther
	}
	if p.Photographers != nil {
		e.Photographers = *p.Photographers
	}
	if p.PhotographerKind != nil {
		e.PhotographerKind = *p.PhotographerKind
	}
	if p.Videographers != nil {
		e.Videographers = *p.Videographers
	}
	if p.VideographerKind != nil {
		e.VideographerKind = *p.VideographerKind
	}
	if p.Days != nil {
		e.Days = *p.Days
	}
	if p.ClearStart {
		e.StartAt = nil
	} else if p.StartAt != nil {
		t := *p.StartAt
		e.StartAt = &t
	}
	if p.ClearEventCoordinator {
		e.EventCoordinatorID = nil
	} else if p.EventCoordinatorID != nil {
		e.EventCoordinatorID = copyStringPtr(p.EventCoordinatorID)
	}
	if p.ClearProductionCoordinator {
		e.ProductionCoordinatorID = nil
	} else if p.ProductionCoordinatorID != nil {
		e.ProductionCoordinatorID = copyStringPtr(p.ProductionCoordinatorID)
	}
	if p.NotesDraft != nil {
		e.NotesDraft = *p.NotesDraft
	}
	if p.CommitNotes {
		e.Notes = e.NotesDraft
	}
	if p.SetChecklist {
		e.Checklist = make([]domain.ChecklistItem, len(p.Checklist))
		copy(e.Checklist, p.Checklist)
	}
	if p.Expanded != nil {
		e.Expanded = *p.Expanded
	}
	return nil
}

// RemoveEvent drops a package unconditionally, snapshot included.
func (s *Store) RemoveEvent(localID string) error {
	for i, e := range s.events {
		if e.LocalID == localID {
			s.events = append(s.events[:i], s.events[i+1:]...)
			delete(s.snapshots, localID)
			return nil
		}
	}
	return fmt.Errorf("removing event %s: %w", localID, ErrEventNotFound)
}

// MarkSaved records a durable-store acknowledgement: it assigns the remote
// id and refreshes the saved snapshot. It is the only mutation of RemoteID
// and must only run after the store confirms acceptance.
func (s *Store) MarkSaved(localID, remoteID string) error {
	e, ok := s.Event(localID)
	if !ok {
		return fmt.Errorf("marking event %s saved: %w", localID, ErrEventNotFound)
	}
	e.RemoteID = remoteID
	s.snapshots[localID] = Snapshot(e)
	return nil
}

// RevertAll discards in-memory event edits. Saved packages are restored to
// their last snapshot; packages without one are reset to an empty card,
// keeping their local id. The remote id also survives the reset so a card
// that was durably saved in an earlier session keeps updating the same row.
func (s *Store) RevertAll() {
	for _, e := range s.events {
		if snap := s.snapshots[e.LocalID]; snap != nil {
			snap.Restore(e)
			continue
		}
		id, remoteID := e.LocalID, e.RemoteID
		*e = domain.EventPackage{LocalID: id, RemoteID: remoteID, Days: 1}
	}
}
