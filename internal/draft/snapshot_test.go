package draft

import (
	"testing"
	"time"

	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/avinashkumarr/studiobook/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIsDirty_NeverSavedEmptyCardIsClean(t *testing.T) {
	e := &domain.EventPackage{LocalID: "l1", Days: 1}
	assert.False(t, IsDirty(e, nil))

	e.Type = domain.EventWedding
	assert.False(t, IsDirty(e, nil), "type alone does not populate the card")

	start := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	e.StartAt = &start
	assert.True(t, IsDirty(e, nil), "populated never-saved card is dirty")
}

func TestIsDirty_CleanAfterSnapshot(t *testing.T) {
	e := testutil.NewTestEvent(testutil.WithCrew(2, 1))
	snap := Snapshot(e)
	assert.False(t, IsDirty(e, snap))

	e.Photographers = 3
	assert.True(t, IsDirty(e, snap))

	e.Photographers = 2
	assert.False(t, IsDirty(e, snap), "reverting the edit clears the flag")
}

func TestIsDirty_TimeComparedByInstant(t *testing.T) {
	utc := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	e := testutil.NewTestEvent(testutil.WithEventStart(utc))
	snap := Snapshot(e)

	ist := utc.In(time.FixedZone("IST", 5*3600+1800))
	e.StartAt = &ist
	assert.False(t, IsDirty(e, snap), "same instant in another zone is not a change")

	later := utc.Add(time.Hour)
	e.StartAt = &later
	assert.True(t, IsDirty(e, snap))
}

func TestIsDirty_TransientFieldsExcluded(t *testing.T) {
	e := testutil.NewTestEvent()
	e.Notes = "confirmed with client"
	e.NotesDraft = e.Notes
	snap := Snapshot(e)

	e.NotesDraft = "typing an update..."
	e.Expanded = true
	assert.False(t, IsDirty(e, snap), "notes-in-progress and expansion are not edits")

	e.Notes = e.NotesDraft
	assert.True(t, IsDirty(e, snap), "committed notes are edits")
}

func TestIsDirty_ChecklistOrderSensitive(t *testing.T) {
	e := testutil.NewTestEvent(testutil.WithChecklist(
		domain.ChecklistItem{ID: "a", Text: "Scout venue"},
		domain.ChecklistItem{ID: "b", Text: "Hire second shooter"},
	))
	snap := Snapshot(e)
	assert.False(t, IsDirty(e, snap))

	e.Checklist[0], e.Checklist[1] = e.Checklist[1], e.Checklist[0]
	assert.True(t, IsDirty(e, snap))
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	coord := "ec-meera"
	e := testutil.NewTestEvent(testutil.WithChecklist(
		domain.ChecklistItem{ID: "a", Text: "Scout venue"},
	))
	e.EventCoordinatorID = &coord
	snap := Snapshot(e)

	e.Checklist[0].Checked = true
	*e.EventCoordinatorID = "ec-rohan"

	assert.False(t, snap.Checklist[0].Checked)
	assert.Equal(t, "ec-meera", *snap.EventCoordinatorID)
}

func TestRestore_RewindsToSnapshot(t *testing.T) {
	e := testutil.NewTestEvent(testutil.WithCrew(1, 0), testutil.WithDays(2))
	e.NotesDraft = "half-typed"
	snap := Snapshot(e)

	e.Type = domain.EventCorporate
	e.Videographers = 4
	e.StartAt = nil

	snap.Restore(e)
	assert.Equal(t, domain.EventWedding, e.Type)
	assert.Equal(t, 0, e.Videographers)
	assert.NotNil(t, e.StartAt)
	assert.Equal(t, "half-typed", e.NotesDraft, "restore leaves transient state alone")
	assert.False(t, IsDirty(e, snap))
}
