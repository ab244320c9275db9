package draft

import (
	"testing"
	"time"

	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func TestCreateRoot_Validates(t *testing.T) {
	s := NewStore()

	_, err := s.CreateRoot("", domain.ProjectWedding)
	assert.Error(t, err)

	_, err = s.CreateRoot("Kapoor Wedding", "gala")
	assert.Error(t, err)

	r, err := s.CreateRoot("Kapoor Wedding", domain.ProjectWedding)
	require.NoError(t, err)
	assert.Equal(t, 1, r.PageCursor)
	assert.Equal(t, domain.ProjectDraftStatus, r.Status)
}

func TestUpdateRoot_RejectsEndBeforeStart(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.UpdateRoot(RootPatch{StartAt: datePtr(2026, 6, 10)}))

	err := s.UpdateRoot(RootPatch{EndAt: datePtr(2026, 6, 1)})
	assert.ErrorIs(t, err, ErrEndBeforeStart)
	assert.Nil(t, s.Root().EndAt, "rejected patch leaves the store unchanged")

	require.NoError(t, s.UpdateRoot(RootPatch{EndAt: datePtr(2026, 6, 12)}))
	assert.Equal(t, "2026-06-12", s.Root().EndAt.Format("2006-01-02"))
}

func TestUpdateRoot_StartMovingPastEndClearsEnd(t *testing.T) {
	s := NewStore()
	confirmed := true
	require.NoError(t, s.UpdateRoot(RootPatch{
		StartAt: datePtr(2026, 6, 10),
		EndAt:   datePtr(2026, 6, 12),
	}))
	require.NoError(t, s.UpdateRoot(RootPatch{EndConfirmed: &confirmed}))

	require.NoError(t, s.UpdateRoot(RootPatch{StartAt: datePtr(2026, 7, 1)}))
	assert.Equal(t, "2026-07-01", s.Root().StartAt.Format("2006-01-02"))
	assert.Nil(t, s.Root().EndAt)
	assert.False(t, s.Root().EndConfirmed)
}

func TestUpdateRoot_ClearFlags(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.UpdateRoot(RootPatch{
		StartAt: datePtr(2026, 6, 10),
		EndAt:   datePtr(2026, 6, 12),
	}))

	require.NoError(t, s.UpdateRoot(RootPatch{ClearEnd: true}))
	assert.Nil(t, s.Root().EndAt)
	assert.NotNil(t, s.Root().StartAt)

	require.NoError(t, s.UpdateRoot(RootPatch{ClearStart: true}))
	assert.Nil(t, s.Root().StartAt)
}

func TestUpdateRoot_ValidatesContactFields(t *testing.T) {
	s := NewStore()

	assert.Error(t, s.UpdateRoot(RootPatch{ClientEmail: strPtr("not-an-email")}))
	assert.Empty(t, s.Root().ClientEmail)

	assert.Error(t, s.UpdateRoot(RootPatch{ClientPhone: strPtr("12ab")}))
	assert.Empty(t, s.Root().ClientPhone)

	require.NoError(t, s.UpdateRoot(RootPatch{
		ClientEmail: strPtr("anita@example.com"),
		ClientPhone: strPtr("+91 98765 43210"),
	}))
}

func TestSetDraftID_WriteOnce(t *testing.T) {
	s := NewStore()
	s.SetDraftID("d-1")
	s.SetDraftID("d-2")
	assert.Equal(t, "d-1", s.Root().DraftID)
}

func TestAddEvent_Defaults(t *testing.T) {
	s := NewStore()
	e := s.AddEvent()
	assert.NotEmpty(t, e.LocalID)
	assert.Equal(t, 1, e.Days)
	assert.Empty(t, e.RemoteID)
	assert.False(t, s.IsDirty(e.LocalID))
}

func TestUpdateEvent_NotesDraftVsCommit(t *testing.T) {
	s := NewStore()
	e := s.AddEvent()

	require.NoError(t, s.UpdateEvent(e.LocalID, EventPatch{NotesDraft: strPtr("call about drone")}))
	assert.Equal(t, "call about drone", e.NotesDraft)
	assert.Empty(t, e.Notes)

	require.NoError(t, s.UpdateEvent(e.LocalID, EventPatch{CommitNotes: true}))
	assert.Equal(t, "call about drone", e.Notes)
}

func TestUpdateEvent_UnknownID(t *testing.T) {
	s := NewStore()
	err := s.UpdateEvent("missing", EventPatch{})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestMarkSaved_AssignsRemoteIDAndCleans(t *testing.T) {
	s := NewStore()
	e := s.AddEvent()
	typ := domain.EventWedding
	require.NoError(t, s.UpdateEvent(e.LocalID, EventPatch{Type: &typ, StartAt: datePtr(2026, 6, 10)}))
	require.True(t, s.IsDirty(e.LocalID))

	require.NoError(t, s.MarkSaved(e.LocalID, "r-1"))
	assert.Equal(t, "r-1", e.RemoteID)
	assert.False(t, s.IsDirty(e.LocalID))
}

func TestRemoveEvent_DropsSnapshot(t *testing.T) {
	s := NewStore()
	e := s.AddEvent()
	require.NoError(t, s.MarkSaved(e.LocalID, "r-1"))
	require.NotNil(t, s.SavedSnapshot(e.LocalID))

	require.NoError(t, s.RemoveEvent(e.LocalID))
	assert.Nil(t, s.SavedSnapshot(e.LocalID))
	assert.Empty(t, s.Events())

	assert.ErrorIs(t, s.RemoveEvent(e.LocalID), ErrEventNotFound)
}

func TestRevertAll(t *testing.T) {
	s := NewStore()

	saved := s.AddEvent()
	typ := domain.EventWedding
	require.NoError(t, s.UpdateEvent(saved.LocalID, EventPatch{Type: &typ, StartAt: datePtr(2026, 6, 10)}))
	require.NoError(t, s.MarkSaved(saved.LocalID, "r-1"))

	never := s.AddEvent()
	other := domain.EventBirthday
	require.NoError(t, s.UpdateEvent(never.LocalID, EventPatch{Type: &other, StartAt: datePtr(2026, 8, 1)}))

	// Dirty the saved card too.
	photos := 5
	require.NoError(t, s.UpdateEvent(saved.LocalID, EventPatch{Photographers: &photos}))
	require.True(t, s.IsDirty(saved.LocalID))

	s.RevertAll()

	assert.Equal(t, 0, saved.Photographers, "saved card rewinds to its snapshot")
	assert.Equal(t, "r-1", saved.RemoteID)
	assert.Equal(t, domain.EventPackage{LocalID: never.LocalID, Days: 1}, *never,
		"never-saved card resets to an empty card, keeping its id")

	for _, dirty := range s.DirtyMap() {
		assert.False(t, dirty)
	}
}
