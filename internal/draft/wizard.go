package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/avinashkumarr/studiobook/internal/pricing"
)

var (
	// ErrUnsavedEvents blocks page 2 -> 3 while any populated package has
	// unsaved changes.
	ErrUnsavedEvents = errors.New("event packages have unsaved changes")

	// ErrAtFirstPage and ErrAtLastPage guard the page range.
	ErrAtFirstPage = errors.New("already on the first page")
	ErrAtLastPage  = errors.New("already on the review page")

	// ErrNotOnReview is returned when Submit is called before page 3.
	ErrNotOnReview = errors.New("submit is only available from the review page")

	// ErrSessionEnded is returned for any action after a successful submit.
	ErrSessionEnded = errors.New("wizard session has ended")

	// ErrRootNotCreated is returned when a per-event save runs before the
	// root exists remotely.
	ErrRootNotCreated = errors.New("project root has not been created yet")
)

// Backend is the durable store's contract consumed by the controller. The
// two synchronous gates (root creation and submit) block on it; per-event
// saves surface its failures directly to the caller.
type Backend interface {
	CreateProjectRoot(ctx context.Context, root *domain.ProjectDraft) (draftID string, err error)
	UpsertEventPackage(ctx context.Context, draftID string, e *domain.EventPackage) (remoteID string, err error)
	SubmitProject(ctx context.Context, draftID string, events []*domain.EventPackage) error
}

// Controller is the 3-page wizard state machine. Transitions are adjacent
// only: 1 -> 2 gates on root creation, 2 -> 3 gates on every populated event
// package being saved, and backward moves are unconditional.
type Controller struct {
	store   *Store
	rec     *Reconciler
	backend Backend
	rates   pricing.Rates

	baseOverride *int64
	submitted    bool
}

// NewController builds the store, reconciler, and controller as one unit.
func NewController(cache Tier, remote RemoteStore, backend Backend, rates pricing.Rates, opts ReconcilerOptions) *Controller {
	c := &Controller{
		store:   NewStore(),
		backend: backend,
		rates:   rates,
	}
	c.rec = NewReconciler(c.store, cache, remote, c.Summary, opts)
	return c
}

// Store exposes the entity store for read access.
func (c *Controller) Store() *Store { return c.store }

// CurrentPage returns the page cursor (1..3).
func (c *Controller) CurrentPage() int { return c.store.Root().PageCursor }

// DirtyMap returns per-event dirty flags keyed by local id.
func (c *Controller) DirtyMap() map[string]bool { return c.store.DirtyMap() }

// Summary computes the price summary, honoring a manual base override.
func (c *Controller) Summary() pricing.Summary {
	return pricing.SummarizeWithOverride(c.store.Events(), c.rates, c.baseOverride)
}

// SetBaseOverride records a transient manual base price. Passing nil returns
// to the computed figure. The override never feeds back into event fields.
func (c *Controller) SetBaseOverride(ctx context.Context, paise *int64) {
	if paise == nil {
		c.baseOverride = nil
	} else {
		v := *paise
		c.baseOverride = &v
	}
	c.rec.OnMutate(ctx)
}

// Hydrate restores the session from the authoritative tier and ensures page
// 2 never shows zero cards.
func (c *Controller) Hydrate(ctx context.Context, entry EntryPoint) (HydrationSource, error) {
	src, err := c.rec.Hydrate(ctx, entry)
	if err != nil {
		return src, err
	}
	if c.store.Root().PageCursor >= 2 && len(c.store.Events()) == 0 {
		c.store.AddEvent()
	}
	return src, nil
}

// UpdateRoot applies a root patch; date-rule violations are rejected here
// and leave the store unchanged.
func (c *Controller) UpdateRoot(ctx context.Context, p RootPatch) error {
	if c.submitted {
		return ErrSessionEnded
	}
	if err := c.store.UpdateRoot(p); err != nil {
		return err
	}
	c.rec.OnMutate(ctx)
	return nil
}

// AddEvent appends a fresh card. If the current last card already satisfies
// its required fields and has unsaved changes, it is saved implicitly first;
// a failed implicit save surfaces and no card is added.
func (c *Controller) AddEvent(ctx context.Context) (*domain.EventPackage, error) {
	if c.submitted {
		return nil, ErrSessionEnded
	}
	events := c.store.Events()
	if n := len(events); n > 0 {
		last := events[n-1]
		if last.RequiredFieldsSet() && c.store.IsDirty(last.LocalID) {
			if err := c.SaveEvent(ctx, last.LocalID); err != nil {
				return nil, fmt.Errorf("saving previous event package: %w", err)
			}
		}
	}
	e := c.store.AddEvent()
	c.rec.OnMutate(ctx)
	return e, nil
}

// UpdateEvent applies an event patch.
func (c *Controller) UpdateEvent(ctx context.Context, localID string, p EventPatch) error {
	if c.submitted {
		return ErrSessionEnded
	}
	if err := c.store.UpdateEvent(localID, p); err != nil {
		return err
	}
	c.rec.OnMutate(ctx)
	return nil
}

// RemoveEvent drops a card unconditionally.
func (c *Controller) RemoveEvent(ctx context.Context, localID string) error {
	if c.submitted {
		return ErrSessionEnded
	}
	if err := c.store.RemoveEvent(localID); err != nil {
		return err
	}
	c.rec.OnMutate(ctx)
	return nil
}

// SaveEvent performs the explicit per-card save. On failure the entity store
// is left unchanged so the user can retry without data loss.
func (c *Controller) SaveEvent(ctx context.Context, localID string) error {
	if c.submitted {
		return ErrSessionEnded
	}
	e, ok := c.store.Event(localID)
	if !ok {
		return fmt.Errorf("saving event %s: %w", localID, ErrEventNotFound)
	}
	if !e.RequiredFieldsSet() {
		return fmt.Errorf("event package needs an event type and a start date before it can be saved")
	}
	draftID := c.store.Root().DraftID
	if draftID == "" {
		return ErrRootNotCreated
	}
	remoteID, err := c.backend.UpsertEventPackage(ctx, draftID, e)
	if err != nil {
		return err
	}
	if err := c.store.MarkSaved(localID, remoteID); err != nil {
		return err
	}
	c.rec.OnMutate(ctx)
	return nil
}

// RevertAllEvents discards in-memory event edits and restores the last-saved
// snapshots, instantly satisfying the 2 -> 3 gate.
func (c *Controller) RevertAllEvents(ctx context.Context) {
	if c.submitted {
		return
	}
	c.store.RevertAll()
	c.rec.OnMutate(ctx)
}

// CanAdvance reports whether Advance would succeed, without side effects.
func (c *Controller) CanAdvance() bool {
	if c.submitted {
		return false
	}
	switch c.CurrentPage() {
	case 1:
		return c.store.Root().RequiredFieldsSet()
	case 2:
		return !c.anyDirty()
	default:
		return false
	}
}

// CanGoBack reports whether a backward transition is available.
func (c *Controller) CanGoBack() bool {
	return !c.submitted && c.CurrentPage() > 1
}

// Advance moves forward one page. 1 -> 2 creates the durable root if no
// draft id exists yet, blocking until acknowledgement, and ensures at least
// one empty event card. 2 -> 3 requires every populated package to be
// clean. Failure leaves the page cursor unchanged.
func (c *Controller) Advance(ctx context.Context) error {
	if c.submitted {
		return ErrSessionEnded
	}
	switch c.CurrentPage() {
	case 1:
		root := c.store.Root()
		if err := root.ValidateRequired(); err != nil {
			return err
		}
		if root.DraftID == "" {
			id, err := c.backend.CreateProjectRoot(ctx, root)
			if err != nil {
				return err
			}
			c.store.SetDraftID(id)
		}
		c.store.SetPage(2)
		if len(c.store.Events()) == 0 {
			c.store.AddEvent()
		}
		c.rec.OnMutate(ctx)
		return nil

	case 2:
		if c.anyDirty() {
			return ErrUnsavedEvents
		}
		c.store.SetPage(3)
		c.rec.OnMutate(ctx)
		return nil

	default:
		return ErrAtLastPage
	}
}

// GoBack moves backward one page, unconditionally.
func (c *Controller) GoBack(ctx context.Context) error {
	if c.submitted {
		return ErrSessionEnded
	}
	page := c.CurrentPage()
	if page <= 1 {
		return ErrAtFirstPage
	}
	c.store.SetPage(page - 1)
	c.rec.OnMutate(ctx)
	return nil
}

// Submit is the terminal action, reachable only from the review page. It
// saves any still-unsaved packages, promotes the root out of draft state in
// one transaction, and clears the cache tier. On failure the entity store is
// unchanged and the session continues.
func (c *Controller) Submit(ctx context.Context) error {
	if c.submitted {
		return ErrSessionEnded
	}
	if c.CurrentPage() != 3 {
		return ErrNotOnReview
	}
	draftID := c.store.Root().DraftID
	if draftID == "" {
		return ErrRootNotCreated
	}

	for _, e := range c.store.Events() {
		if !e.RequiredFieldsSet() || !c.store.IsDirty(e.LocalID) {
			continue
		}
		remoteID, err := c.backend.UpsertEventPackage(ctx, draftID, e)
		if err != nil {
			return fmt.Errorf("saving event package before submit: %w", err)
		}
		if err := c.store.MarkSaved(e.LocalID, remoteID); err != nil {
			return err
		}
	}

	if err := c.backend.SubmitProject(ctx, draftID, c.store.Events()); err != nil {
		return err
	}

	c.store.Root().Status = domain.ProjectConfirmed
	c.submitted = true
	if err := c.rec.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session cache: %w", err)
	}
	return nil
}

// Flush pushes any pending autosave to the durable tier immediately. Called
// on session exit so quitting never loses the debounce window.
func (c *Controller) Flush(ctx context.Context) error {
	return c.rec.Flush(ctx)
}

// Close stops the reconciler's timers. The session can no longer autosave.
func (c *Controller) Close() {
	c.rec.Stop()
}

func (c *Controller) anyDirty() bool {
	for _, dirty := range c.store.DirtyMap() {
		if dirty {
			return true
		}
	}
	return false
}
