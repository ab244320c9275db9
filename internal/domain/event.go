package domain

import "time"

// ChecklistItem is one deliverable checklist entry on an event package.
type ChecklistItem struct {
	ID      string
	Text    string
	Checked bool
}

// EventPackage is one bookable event under a project draft. LocalID is
// client-generated and stable for the card's lifetime; RemoteID is assigned
// the first time the durable store acknowledges a save.
type EventPackage struct {
	LocalID  string
	RemoteID string

	// Required for Save: Type and StartAt.
	Type      EventType
	TypeOther string // free text, meaningful only when Type is "other"

	Photographers    int
	PhotographerKind string
	Videographers    int
	VideographerKind string
	Days             int
	StartAt          *time.Time

	// Nullable coordinator references, resolved against the directory.
	EventCoordinatorID      *string
	ProductionCoordinatorID *string

	// Notes has an edit/committed duality: NotesDraft is the in-progress
	// text, Notes is the committed value that participates in dirty
	// tracking and persistence.
	Notes      string
	NotesDraft string

	Checklist []ChecklistItem

	// Expanded is a transient UI flag and never part of saved state.
	Expanded bool
}

// RequiredFieldsSet reports whether the package is eligible for Save.
func (e *EventPackage) RequiredFieldsSet() bool {
	return e.Type != "" && e.StartAt != nil
}

// Clone returns a deep copy of the package, including the checklist.
func (e *EventPackage) Clone() *EventPackage {
	out := *e
	if e.StartAt != nil {
		t := *e.StartAt
		out.StartAt = &t
	}
	if e.EventCoordinatorID != nil {
		s := *e.EventCoordinatorID
		out.EventCoordinatorID = &s
	}
	if e.ProductionCoordinatorID != nil {
		s := *e.ProductionCoordinatorID
		out.ProductionCoordinatorID = &s
	}
	out.Checklist = make([]ChecklistItem, len(e.Checklist))
	copy(out.Checklist, e.Checklist)
	return &out
}
