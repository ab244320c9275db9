package draft

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/avinashkumarr/studiobook/internal/pricing"
)

// Envelope is the full serialized form of a draft, written to the local
// cache and the durable store. Its shape is an internal contract between the
// reconciler and the tiers; it is not a stable wire format.
type Envelope struct {
	PageCursor int             `json:"page_cursor"`
	Project    envelopeProject `json:"project"`
	Events     []envelopeEvent `json:"events"`
	Template   string          `json:"template,omitempty"`
	Summary    pricing.Summary `json:"summary"`
	SavedAt    time.Time       `json:"saved_at"`
}

type envelopeProject struct {
	DraftID        string     `json:"draft_id,omitempty"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	ClientName     string     `json:"client_name,omitempty"`
	ClientEmail    string     `json:"client_email,omitempty"`
	ClientPhone    string     `json:"client_phone,omitempty"`
	StartAt        *time.Time `json:"start_at,omitempty"`
	StartConfirmed bool       `json:"start_confirmed,omitempty"`
	EndAt          *time.Time `json:"end_at,omitempty"`
	EndConfirmed   bool       `json:"end_confirmed,omitempty"`
}

type envelopeEvent struct {
	LocalID          string     `json:"local_id"`
	RemoteID         string     `json:"remote_id,omitempty"`
	Type             string     `json:"type"`
	TypeOther        string     `json:"type_other,omitempty"`
	Photographers    int        `json:"photographers"`
	PhotographerKind string     `json:"photographer_kind,omitempty"`
	Videographers    int        `json:"videographers"`
	VideographerKind string     `json:"videographer_kind,omitempty"`
	Days             int        `json:"days"`
	StartAt          *time.Time `json:"start_at,omitempty"`

	EventCoordinatorID      *string `json:"event_coordinator_id,omitempty"`
	ProductionCoordinatorID *string `json:"production_coordinator_id,omitempty"`

	Notes     string                  `json:"notes,omitempty"`
	Checklist []envelopeChecklistItem `json:"checklist,omitempty"`

	Saved bool `json:"saved"`
}

type envelopeChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// BuildEnvelope serializes the store's current state. Dates round-trip as
// RFC 3339 through the standard JSON encoding of time.Time.
func BuildEnvelope(s *Store, summary pricing.Summary) *Envelope {
	r := s.Root()
	env := &Envelope{
		PageCursor: r.PageCursor,
		Project: envelopeProject{
			DraftID:        r.DraftID,
			Name:           r.Name,
			Type:           string(r.Type),
			ClientName:     r.ClientName,
			ClientEmail:    r.ClientEmail,
			ClientPhone:    r.ClientPhone,
			StartAt:        r.StartAt,
			StartConfirmed: r.StartConfirmed,
			EndAt:          r.EndAt,
			EndConfirmed:   r.EndConfirmed,
		},
		Template: r.Template,
		Summary:  summary,
		SavedAt:  time.Now().UTC(),
	}
	for _, e := range s.Events() {
		ev := envelopeEvent{
			LocalID:                 e.LocalID,
			RemoteID:                e.RemoteID,
			Type:                    string(e.Type),
			TypeOther:               e.TypeOther,
			Photographers:           e.Photographers,
			PhotographerKind:        e.PhotographerKind,
			Videographers:           e.Videographers,
			VideographerKind:        e.VideographerKind,
			Days:                    e.Days,
			StartAt:                 e.StartAt,
			EventCoordinatorID:      e.EventCoordinatorID,
			ProductionCoordinatorID: e.ProductionCoordinatorID,
			Notes:                   e.Notes,
			Saved:                   s.SavedSnapshot(e.LocalID) != nil && !s.IsDirty(e.LocalID),
		}
		for _, c := range e.Checklist {
			ev.Checklist = append(ev.Checklist, envelopeChecklistItem(c))
		}
		env.Events = append(env.Events, ev)
	}
	return env
}

// ApplyEnvelope hydrates the store from a previously saved envelope.
// Events flagged as saved get a fresh snapshot so they start clean.
//
// The envelope holds a single structural snapshot, not an edit history. A
// card that was dirty when the envelope was written comes back dirty with
// its current values only; its pre-edit baseline is gone, so reverting it
// after a reload resets it to an empty card (keeping local and remote ids)
// rather than to the values last written durably.
func ApplyEnvelope(s *Store, env *Envelope) {
	r := s.Root()
	r.DraftID = env.Project.DraftID
	r.Name = env.Project.Name
	r.Type = domain.ProjectType(env.Project.Type)
	r.ClientName = env.Project.ClientName
	r.ClientEmail = env.Project.ClientEmail
	r.ClientPhone = env.Project.ClientPhone
	r.StartAt = env.Project.StartAt
	r.StartConfirmed = env.Project.StartConfirmed
	r.EndAt = env.Project.EndAt
	r.EndConfirmed = env.Project.EndConfirmed
	r.Template = env.Template
	if env.PageCursor >= 1 && env.PageCursor <= 3 {
		r.PageCursor = env.PageCursor
	}

	s.events = nil
	s.snapshots = make(map[string]*EventSnapshot)
	for _, ev := range env.Events {
		e := &domain.EventPackage{
			LocalID:                 ev.LocalID,
			RemoteID:                ev.RemoteID,
			Type:                    domain.EventType(ev.Type),
			TypeOther:               ev.TypeOther,
			Photographers:           ev.Photographers,
			PhotographerKind:        ev.PhotographerKind,
			Videographers:           ev.Videographers,
			VideographerKind:        ev.VideographerKind,
			Days:                    ev.Days,
			StartAt:                 ev.StartAt,
			EventCoordinatorID:      ev.EventCoordinatorID,
			ProductionCoordinatorID: ev.ProductionCoordinatorID,
			Notes:                   ev.Notes,
			NotesDraft:              ev.Notes,
		}
		for _, c := range ev.Checklist {
			e.Checklist = append(e.Checklist, domain.ChecklistItem(c))
		}
		s.events = append(s.events, e)
		if ev.Saved {
			s.snapshots[e.LocalID] = Snapshot(e)
		}
	}
}

// EnvelopeFromRecord synthesizes an envelope from durable rows, for resuming
// a draft that was created remotely but whose envelope was never written.
// Stored packages count as saved.
func EnvelopeFromRecord(root *domain.ProjectDraft, events []*domain.EventPackage, summary pricing.Summary) *Envelope {
	env := &Envelope{
		PageCursor: root.PageCursor,
		Project: envelopeProject{
			DraftID:        root.DraftID,
			Name:           root.Name,
			Type:           string(root.Type),
			ClientName:     root.ClientName,
			ClientEmail:    root.ClientEmail,
			ClientPhone:    root.ClientPhone,
			StartAt:        root.StartAt,
			StartConfirmed: root.StartConfirmed,
			EndAt:          root.EndAt,
			EndConfirmed:   root.EndConfirmed,
		},
		Template: root.Template,
		Summary:  summary,
		SavedAt:  time.Now().UTC(),
	}
	for _, e := range events {
		ev := envelopeEvent{
			LocalID:                 e.LocalID,
			RemoteID:                e.RemoteID,
			Type:                    string(e.Type),
			TypeOther:               e.TypeOther,
			Photographers:           e.Photographers,
			PhotographerKind:        e.PhotographerKind,
			Videographers:           e.Videographers,
			VideographerKind:        e.VideographerKind,
			Days:                    e.Days,
			StartAt:                 e.StartAt,
			EventCoordinatorID:      e.EventCoordinatorID,
			ProductionCoordinatorID: e.ProductionCoordinatorID,
			Notes:                   e.Notes,
			Saved:                   true,
		}
		if ev.LocalID == "" {
			ev.LocalID = e.RemoteID
		}
		for _, c := range e.Checklist {
			ev.Checklist = append(ev.Checklist, envelopeChecklistItem(c))
		}
		env.Events = append(env.Events, ev)
	}
	return env
}

// Encode marshals the envelope for storage.
func (e *Envelope) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	return data, nil
}

// DecodeEnvelope unmarshals a stored envelope.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	return &env, nil
}
