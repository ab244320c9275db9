package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/avinashkumarr/studiobook/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-memory Backend double with fault injection.
type fakeBackend struct {
	mu         sync.Mutex
	nextID     int
	roots      map[string]*domain.ProjectDraft
	upserts    int
	submitted  []string
	failCreate error
	failUpsert error
	failSubmit error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{roots: make(map[string]*domain.ProjectDraft)}
}

func (b *fakeBackend) CreateProjectRoot(_ context.Context, root *domain.ProjectDraft) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failCreate != nil {
		return "", b.failCreate
	}
	b.nextID++
	id := fmt.Sprintf("d-%d", b.nextID)
	copied := *root
	b.roots[id] = &copied
	return id, nil
}

func (b *fakeBackend) UpsertEventPackage(_ context.Context, draftID string, e *domain.EventPackage) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failUpsert != nil {
		return "", b.failUpsert
	}
	if _, ok := b.roots[draftID]; !ok {
		return "", errors.New("unknown project root")
	}
	b.upserts++
	if e.RemoteID != "" {
		return e.RemoteID, nil
	}
	b.nextID++
	return fmt.Sprintf("r-%d", b.nextID), nil
}

func (b *fakeBackend) SubmitProject(_ context.Context, draftID string, _ []*domain.EventPackage) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failSubmit != nil {
		return b.failSubmit
	}
	b.submitted = append(b.submitted, draftID)
	return nil
}

func (b *fakeBackend) upsertCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.upserts
}

type wizardFixture struct {
	ctrl    *Controller
	backend *fakeBackend
	cache   *memTier
	remote  *memRemote
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()
	f := &wizardFixture{
		backend: newFakeBackend(),
		cache:   newMemTier(),
		remote:  newMemRemote(),
	}
	f.ctrl = NewController(f.cache, f.remote, f.backend, pricing.DefaultRates(), fastOpts())
	t.Cleanup(f.ctrl.Close)
	return f
}

// toPageTwo fills page 1 and advances.
func (f *wizardFixture) toPageTwo(t *testing.T, ctx context.Context) {
	t.Helper()
	require.NoError(t, f.ctrl.UpdateRoot(ctx, RootPatch{
		Name: strPtr("Kapoor Wedding"),
		Type: projTypePtr(domain.ProjectWedding),
	}))
	require.NoError(t, f.ctrl.Advance(ctx))
}

// fillAndSaveFirstEvent populates the first card and saves it.
func (f *wizardFixture) fillAndSaveFirstEvent(t *testing.T, ctx context.Context) *domain.EventPackage {
	t.Helper()
	e := f.ctrl.Store().Events()[0]
	typ := domain.EventWedding
	require.NoError(t, f.ctrl.UpdateEvent(ctx, e.LocalID, EventPatch{
		Type:    &typ,
		StartAt: datePtr(2026, 6, 10),
	}))
	require.NoError(t, f.ctrl.SaveEvent(ctx, e.LocalID))
	return e
}

func projTypePtr(t domain.ProjectType) *domain.ProjectType { return &t }

func TestAdvance_PageOneRequiresNameAndType(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)

	assert.Error(t, f.ctrl.Advance(ctx))
	assert.Equal(t, 1, f.ctrl.CurrentPage())

	f.toPageTwo(t, ctx)
	assert.Equal(t, 2, f.ctrl.CurrentPage())
	assert.NotEmpty(t, f.ctrl.Store().Root().DraftID, "first advance creates the durable root")
	assert.Len(t, f.ctrl.Store().Events(), 1, "page 2 always has at least one card")
}

func TestAdvance_RootCreatedOnce(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)
	id := f.ctrl.Store().Root().DraftID

	require.NoError(t, f.ctrl.GoBack(ctx))
	require.NoError(t, f.ctrl.Advance(ctx))
	assert.Equal(t, id, f.ctrl.Store().Root().DraftID)
	assert.Len(t, f.backend.roots, 1)
}

func TestAdvance_CreateFailureKeepsPage(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.backend.failCreate = errors.New("db locked")

	require.NoError(t, f.ctrl.UpdateRoot(ctx, RootPatch{
		Name: strPtr("Kapoor Wedding"),
		Type: projTypePtr(domain.ProjectWedding),
	}))
	assert.Error(t, f.ctrl.Advance(ctx))
	assert.Equal(t, 1, f.ctrl.CurrentPage())
	assert.Empty(t, f.ctrl.Store().Root().DraftID)
}

func TestAdvance_PageTwoBlocksOnDirtyEvents(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)

	e := f.ctrl.Store().Events()[0]
	typ := domain.EventWedding
	require.NoError(t, f.ctrl.UpdateEvent(ctx, e.LocalID, EventPatch{
		Type:    &typ,
		StartAt: datePtr(2026, 6, 10),
	}))

	assert.ErrorIs(t, f.ctrl.Advance(ctx), ErrUnsavedEvents)
	assert.False(t, f.ctrl.CanAdvance())

	require.NoError(t, f.ctrl.SaveEvent(ctx, e.LocalID))
	assert.True(t, f.ctrl.CanAdvance())
	require.NoError(t, f.ctrl.Advance(ctx))
	assert.Equal(t, 3, f.ctrl.CurrentPage())
}

func TestAdvance_EmptyCardDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)

	require.NoError(t, f.ctrl.Advance(ctx), "an untouched card never blocks review")
	assert.Equal(t, 3, f.ctrl.CurrentPage())
}

func TestSaveEvent_RequiresPopulatedCardAndRoot(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)

	e := f.ctrl.Store().Events()[0]
	assert.Error(t, f.ctrl.SaveEvent(ctx, e.LocalID), "empty card cannot be saved")
	assert.Error(t, f.ctrl.SaveEvent(ctx, "missing"))
}

func TestSaveEvent_FailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)

	e := f.ctrl.Store().Events()[0]
	typ := domain.EventWedding
	require.NoError(t, f.ctrl.UpdateEvent(ctx, e.LocalID, EventPatch{
		Type:    &typ,
		StartAt: datePtr(2026, 6, 10),
	}))

	f.backend.failUpsert = errors.New("db locked")
	assert.Error(t, f.ctrl.SaveEvent(ctx, e.LocalID))
	assert.Empty(t, e.RemoteID)
	assert.True(t, f.ctrl.Store().IsDirty(e.LocalID), "the card stays dirty for a retry")
}

func TestAddEvent_ImplicitlySavesPreviousCard(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)

	e := f.ctrl.Store().Events()[0]
	typ := domain.EventWedding
	require.NoError(t, f.ctrl.UpdateEvent(ctx, e.LocalID, EventPatch{
		Type:    &typ,
		StartAt: datePtr(2026, 6, 10),
	}))

	added, err := f.ctrl.AddEvent(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, e.RemoteID, "the previous card was saved on the way")
	assert.False(t, f.ctrl.Store().IsDirty(e.LocalID))
	assert.Len(t, f.ctrl.Store().Events(), 2)
	assert.NotEqual(t, e.LocalID, added.LocalID)
}

func TestAddEvent_ImplicitSaveFailureAddsNothing(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)

	e := f.ctrl.Store().Events()[0]
	typ := domain.EventWedding
	require.NoError(t, f.ctrl.UpdateEvent(ctx, e.LocalID, EventPatch{
		Type:    &typ,
		StartAt: datePtr(2026, 6, 10),
	}))

	f.backend.failUpsert = errors.New("db locked")
	_, err := f.ctrl.AddEvent(ctx)
	assert.Error(t, err)
	assert.Len(t, f.ctrl.Store().Events(), 1)
}

func TestRevertAllEvents_SatisfiesTheGate(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)
	saved := f.fillAndSaveFirstEvent(t, ctx)

	photos := 6
	require.NoError(t, f.ctrl.UpdateEvent(ctx, saved.LocalID, EventPatch{Photographers: &photos}))
	assert.ErrorIs(t, f.ctrl.Advance(ctx), ErrUnsavedEvents)

	f.ctrl.RevertAllEvents(ctx)
	assert.Equal(t, 0, saved.Photographers)
	require.NoError(t, f.ctrl.Advance(ctx))
}

func TestSubmit_OnlyFromReviewPage(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)
	assert.ErrorIs(t, f.ctrl.Submit(ctx), ErrNotOnReview)
}

func TestSubmit_HappyPath(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)
	f.fillAndSaveFirstEvent(t, ctx)
	require.NoError(t, f.ctrl.Advance(ctx))

	require.NoError(t, f.ctrl.Submit(ctx))
	assert.Equal(t, domain.ProjectConfirmed, f.ctrl.Store().Root().Status)
	assert.Len(t, f.backend.submitted, 1)
	assert.Nil(t, f.cache.get("current"), "submit clears the local cache")

	assert.ErrorIs(t, f.ctrl.Submit(ctx), ErrSessionEnded)
	assert.ErrorIs(t, f.ctrl.UpdateRoot(ctx, RootPatch{}), ErrSessionEnded)
	assert.ErrorIs(t, f.ctrl.Advance(ctx), ErrSessionEnded)
}

func TestSubmit_SavesOutstandingEventsFirst(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)
	f.fillAndSaveFirstEvent(t, ctx)
	require.NoError(t, f.ctrl.Advance(ctx))

	// Dirty the card from the review page (no gate on the way back in this
	// direction, so submit has to sweep it up).
	photos := 3
	e := f.ctrl.Store().Events()[0]
	require.NoError(t, f.ctrl.UpdateEvent(ctx, e.LocalID, EventPatch{Photographers: &photos}))
	before := f.backend.upsertCount()

	require.NoError(t, f.ctrl.Submit(ctx))
	assert.Equal(t, before+1, f.backend.upsertCount())
}

func TestSubmit_FailureKeepsSessionAlive(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)
	f.fillAndSaveFirstEvent(t, ctx)
	require.NoError(t, f.ctrl.Advance(ctx))

	f.backend.failSubmit = errors.New("db locked")
	assert.Error(t, f.ctrl.Submit(ctx))
	assert.Equal(t, domain.ProjectDraftStatus, f.ctrl.Store().Root().Status)

	f.backend.failSubmit = nil
	require.NoError(t, f.ctrl.Submit(ctx))
}

func TestGoBack_Bounds(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	assert.ErrorIs(t, f.ctrl.GoBack(ctx), ErrAtFirstPage)
	assert.False(t, f.ctrl.CanGoBack())

	f.toPageTwo(t, ctx)
	assert.True(t, f.ctrl.CanGoBack())
	require.NoError(t, f.ctrl.GoBack(ctx))
	assert.Equal(t, 1, f.ctrl.CurrentPage())
}

func TestHydrate_EnsuresCardOnPageTwo(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.remote.envs["d-1"] = remoteEnvelope(t, "d-1", "Kapoor Wedding")

	src, err := f.ctrl.Hydrate(ctx, EntryPoint{DraftID: "d-1"})
	require.NoError(t, err)
	assert.Equal(t, SourceRemoteByID, src)
	assert.Equal(t, 2, f.ctrl.CurrentPage())
	assert.Len(t, f.ctrl.Store().Events(), 1)
}

func TestSummary_HonorsBaseOverride(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)
	e := f.fillAndSaveFirstEvent(t, ctx)

	photos := 2
	require.NoError(t, f.ctrl.UpdateEvent(ctx, e.LocalID, EventPatch{Photographers: &photos}))
	computed := f.ctrl.Summary()
	assert.Equal(t, pricing.Summarize(f.ctrl.Store().Events(), pricing.DefaultRates()), computed)

	override := int64(100000_00)
	f.ctrl.SetBaseOverride(ctx, &override)
	assert.Equal(t, override, f.ctrl.Summary().Base)
	assert.Equal(t, 2, e.Photographers, "the override never rewrites event fields")

	f.ctrl.SetBaseOverride(ctx, nil)
	assert.Equal(t, computed, f.ctrl.Summary())
}

func TestResumeMidSession_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t)
	f.toPageTwo(t, ctx)
	f.fillAndSaveFirstEvent(t, ctx)
	require.NoError(t, f.ctrl.Flush(ctx))
	f.ctrl.Close()

	// A new session on the same machine picks up the cache.
	resumed := NewController(f.cache, f.remote, f.backend, pricing.DefaultRates(), fastOpts())
	t.Cleanup(resumed.Close)

	src, err := resumed.Hydrate(ctx, EntryPoint{})
	require.NoError(t, err)
	assert.Equal(t, SourceCache, src)
	assert.Equal(t, 2, resumed.CurrentPage())
	assert.Equal(t, "Kapoor Wedding", resumed.Store().Root().Name)
	require.Len(t, resumed.Store().Events(), 1)
	assert.False(t, resumed.Store().IsDirty(resumed.Store().Events()[0].LocalID))
}
