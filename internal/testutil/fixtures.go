package testutil

import (
	"time"

	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.ProjectDraft)

func WithProjectType(t domain.ProjectType) ProjectOption {
	return func(p *domain.ProjectDraft) {
		p.Type = t
	}
}

func WithClient(name, email, phone string) ProjectOption {
	return func(p *domain.ProjectDraft) {
		p.ClientName = name
		p.ClientEmail = email
		p.ClientPhone = phone
	}
}

func WithProjectDates(start, end time.Time) ProjectOption {
	return func(p *domain.ProjectDraft) {
		p.StartAt = &start
		p.EndAt = &end
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.ProjectDraft {
	now := time.Now().UTC()
	p := &domain.ProjectDraft{
		DraftID:    uuid.New().String(),
		Name:       name,
		Type:       domain.ProjectWedding,
		PageCursor: 1,
		Status:     domain.ProjectDraftStatus,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Event package options
type EventOption func(*domain.EventPackage)

func WithEventType(t domain.EventType) EventOption {
	return func(e *domain.EventPackage) {
		e.Type = t
	}
}

func WithEventStart(t time.Time) EventOption {
	return func(e *domain.EventPackage) {
		e.StartAt = &t
	}
}

func WithCrew(photographers, videographers int) EventOption {
	return func(e *domain.EventPackage) {
		e.Photographers = photographers
		e.Videographers = videographers
	}
}

func WithDays(days int) EventOption {
	return func(e *domain.EventPackage) {
		e.Days = days
	}
}

func WithChecklist(items ...domain.ChecklistItem) EventOption {
	return func(e *domain.EventPackage) {
		e.Checklist = items
	}
}

func NewTestEvent(opts ...EventOption) *domain.EventPackage {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	e := &domain.EventPackage{
		LocalID: uuid.New().String(),
		Type:    domain.EventWedding,
		Days:    1,
		StartAt: &start,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
