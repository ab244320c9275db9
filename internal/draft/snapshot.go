// Package draft holds the wizard's draft-state engine: the in-memory entity
// store, per-event dirty tracking, the envelope codec, the storage tiers, the
// reconciler that keeps the tiers consistent, and the page controller.
package draft

import (
	"time"

	"github.com/avinashkumarr/studiobook/internal/domain"
)

// EventSnapshot is an immutable, field-restricted copy of an event package's
// editable fields, taken at the last successful save. Transient UI state
// (NotesDraft, Expanded) is deliberately excluded.
type EventSnapshot struct {
	Type             domain.EventType
	TypeOther        string
	Photographers    int
	PhotographerKind string
	Videographers    int
	VideographerKind string
	Days             int
	StartAt          *time.Time

	EventCoordinatorID      *string
	ProductionCoordinatorID *string

	Notes     string
	Checklist []domain.ChecklistItem
}

// Snapshot captures the editable fields of e as a deep copy.
func Snapshot(e *domain.EventPackage) *EventSnapshot {
	s := &EventSnapshot{
		Type:             e.Type,
		TypeOther:        e.TypeOther,
		Photographers:    e.Photographers,
		PhotographerKind: e.PhotographerKind,
		Videographers:    e.Videographers,
		VideographerKind: e.VideographerKind,
		Days:             e.Days,
		Notes:            e.Notes,
	}
	if e.StartAt != nil {
		t := *e.StartAt
		s.StartAt = &t
	}
	s.EventCoordinatorID = copyStringPtr(e.EventCoordinatorID)
	s.ProductionCoordinatorID = copyStringPtr(e.ProductionCoordinatorID)
	s.Checklist = make([]domain.ChecklistItem, len(e.Checklist))
	copy(s.Checklist, e.Checklist)
	return s
}

// IsDirty reports whether e has unsaved changes relative to snap. A nil
// snapshot means "never saved": such a package is dirty only once its
// required fields are populated, so an empty untouched card never blocks
// navigation. The check is pure and safe to run on every render.
func IsDirty(e *domain.EventPackage, snap *EventSnapshot) bool {
	if snap == nil {
		return e.RequiredFieldsSet()
	}
	if e.Type != snap.Type ||
		e.TypeOther != snap.TypeOther ||
		e.Photographers != snap.Photographers ||
		e.PhotographerKind != snap.PhotographerKind ||
		e.Videographers != snap.Videographers ||
		e.VideographerKind != snap.VideographerKind ||
		e.Days != snap.Days ||
		e.Notes != snap.Notes {
		return true
	}
	if !timePtrEqual(e.StartAt, snap.StartAt) {
		return true
	}
	if !stringPtrEqual(e.EventCoordinatorID, snap.EventCoordinatorID) ||
		!stringPtrEqual(e.ProductionCoordinatorID, snap.ProductionCoordinatorID) {
		return true
	}
	return !checklistEqual(e.Checklist, snap.Checklist)
}

// Restore writes the snapshot's fields back onto e, leaving identity and
// transient UI state untouched.
func (s *EventSnapshot) Restore(e *domain.EventPackage) {
	e.Type = s.Type
	e.TypeOther = s.TypeOther
	e.Photographers = s.Photographers
	e.PhotographerKind = s.PhotographerKind
	e.Videographers = s.Videographers
	e.VideographerKind = s.VideographerKind
	e.Days = s.Days
	e.Notes = s.Notes
	if s.StartAt != nil {
		t := *s.StartAt
		e.StartAt = &t
	} else {
		e.StartAt = nil
	}
	e.EventCoordinatorID = copyStringPtr(s.EventCoordinatorID)
	e.ProductionCoordinatorID = copyStringPtr(s.ProductionCoordinatorID)
	e.Checklist = make([]domain.ChecklistItem, len(s.Checklist))
	copy(e.Checklist, s.Checklist)
}

// timePtrEqual compares by instant, not by reference.
func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// checklistEqual is order-sensitive deep equality.
func checklistEqual(a, b []domain.ChecklistItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func copyStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}
