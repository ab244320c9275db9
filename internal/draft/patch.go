package draft

import (
	"time"

	"github.com/avinashkumarr/studiobook/internal/domain"
)

// RootPatch holds optional updates to the project root. Nil fields are left
// untouched. Date fields use the ClearX flags to distinguish "unset the
// value" from "leave it alone".
type RootPatch struct {
	Name        *string
	Type        *domain.ProjectType
	ClientName  *string
	ClientEmail *string
	ClientPhone *string
	Template    *string

	StartAt        *time.Time
	ClearStart     bool
	StartConfirmed *bool
	EndAt          *time.Time
	ClearEnd       bool
	EndConfirmed   *bool
}

// EventPatch holds optional updates to one event package.
type EventPatch struct {
	Type             *domain.EventType
	TypeOther        *string
	Photographers    *int
	PhotographerKind *string
	Videographers    *int
	VideographerKind *string
	Days             *int
	StartAt          *time.Time
	ClearStart       bool

	EventCoordinatorID         *string
	ClearEventCoordinator      bool
	ProductionCoordinatorID    *string
	ClearProductionCoordinator bool

	// NotesDraft updates the in-progress text; CommitNotes promotes the
	// current draft text to the committed Notes value.
	NotesDraft  *string
	CommitNotes bool

	Checklist    []domain.ChecklistItem
	SetChecklist bool

	Expanded *bool
}
