package draft

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/avinashkumarr/studiobook/internal/pricing"
)

// HydrationSource identifies which tier won the precedence check.
type HydrationSource string

const (
	SourceRemoteByID   HydrationSource = "remote_by_id"
	SourceRemoteByName HydrationSource = "remote_by_name"
	SourceCache        HydrationSource = "cache"
	SourceEmpty        HydrationSource = "empty"
)

// EntryPoint carries the external identifiers the wizard was opened with.
// When both are present the id wins; this is deterministic, not a race.
type EntryPoint struct {
	DraftID string
	Name    string
}

// ReconcilerOptions tune the autosave behavior. Zero values fall back to the
// production defaults.
type ReconcilerOptions struct {
	// QuietPeriod is the debounce window for durable writes.
	QuietPeriod time.Duration
	// GraceWindow is how long after hydration durable writes stay
	// suppressed, so an in-flight reload never clobbers a durable draft
	// with a momentarily-empty in-memory state.
	GraceWindow time.Duration
	// CacheKey is the local-cache slot for this session's draft.
	CacheKey string
	Logger   *slog.Logger
}

const (
	defaultQuietPeriod = 1500 * time.Millisecond
	defaultGraceWindow = 2 * time.Second
	defaultCacheKey    = "current"
)

// Reconciler decides which tier is authoritative at session start and keeps
// the cache and durable store trailing the entity store afterwards: the
// cache synchronously on every mutation, the durable store on a debounce
// timer. Durable write failures are logged and swallowed; the next
// mutation's debounce cycle retries with the latest envelope.
type Reconciler struct {
	store     *Store
	cache     Tier
	remote    RemoteStore
	summarize func() pricing.Summary
	opts      ReconcilerOptions
	log       *slog.Logger

	mu         sync.Mutex
	timer      *time.Timer
	pending    *Envelope
	hydratedAt time.Time
}

// NewReconciler wires the reconciler. summarize supplies the price summary
// snapshot embedded in every envelope.
func NewReconciler(store *Store, cache Tier, remote RemoteStore, summarize func() pricing.Summary, opts ReconcilerOptions) *Reconciler {
	if opts.QuietPeriod <= 0 {
		opts.QuietPeriod = defaultQuietPeriod
	}
	if opts.GraceWindow <= 0 {
		opts.GraceWindow = defaultGraceWindow
	}
	if opts.CacheKey == "" {
		opts.CacheKey = defaultCacheKey
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Reconciler{
		store:     store,
		cache:     cache,
		remote:    remote,
		summarize: summarize,
		opts:      opts,
		log:       log,
	}
}

// Hydrate populates the store from the authoritative tier, evaluated once at
// session start, first match wins: explicit draft id, then explicit name,
// then the local cache, else an empty session. A copy hydrated from the
// durable store overwrites the local cache for the same logical draft.
func (r *Reconciler) Hydrate(ctx context.Context, entry EntryPoint) (HydrationSource, error) {
	defer r.markHydrated()

	if entry.DraftID != "" {
		env, err := r.remote.Load(ctx, entry.DraftID)
		if err != nil {
			return SourceEmpty, err
		}
		ApplyEnvelope(r.store, env)
		r.store.Root().DraftID = entry.DraftID
		r.overwriteCache(ctx, env)
		return SourceRemoteByID, nil
	}

	if entry.Name != "" {
		id, err := r.remote.FindIDByName(ctx, entry.Name)
		switch {
		case err == nil:
			env, err := r.remote.Load(ctx, id)
			if err != nil {
				return SourceEmpty, err
			}
			ApplyEnvelope(r.store, env)
			r.store.Root().DraftID = id
			r.overwriteCache(ctx, env)
			return SourceRemoteByName, nil
		case errors.Is(err, ErrNoEnvelope):
			// No durable root by that name; fall through to the cache.
		default:
			return SourceEmpty, err
		}
	}

	env, err := r.cache.Load(ctx, r.opts.CacheKey)
	if err != nil {
		if errors.Is(err, ErrNoEnvelope) {
			return SourceEmpty, nil
		}
		r.log.Warn("local cache unreadable, starting empty", "error", err)
		return SourceEmpty, nil
	}
	ApplyEnvelope(r.store, env)
	return SourceCache, nil
}

// OnMutate must be called after every entity store mutation. The cache write
// is synchronous and never skipped; the durable write is debounced and gated
// on the grace window, an assigned draft id, and populated root required
// fields.
func (r *Reconciler) OnMutate(ctx context.Context) {
	env := BuildEnvelope(r.store, r.summarize())

	if err := r.cache.Save(ctx, r.opts.CacheKey, env); err != nil {
		r.log.Warn("local cache write failed", "error", err)
	}

	if !r.autosaveReady() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = env
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.opts.QuietPeriod, r.fireAutosave)
}

func (r *Reconciler) autosaveReady() bool {
	r.mu.Lock()
	hydratedAt := r.hydratedAt
	r.mu.Unlock()
	if hydratedAt.IsZero() || time.Since(hydratedAt) < r.opts.GraceWindow {
		return false
	}
	root := r.store.Root()
	return root.DraftID != "" && root.RequiredFieldsSet()
}

// fireAutosave runs on the timer goroutine. Only the most recent envelope is
// written; mutations during the quiet period coalesced into it.
func (r *Reconciler) fireAutosave() {
	r.mu.Lock()
	env := r.pending
	r.pending = nil
	r.mu.Unlock()
	if env == nil {
		return
	}

	id := env.Project.DraftID
	if err := r.remote.Save(context.Background(), id, env); err != nil {
		// Swallowed: the draft is simply not yet durable, and the next
		// debounce cycle carries the latest state anyway.
		r.log.Warn("autosave failed", "draft_id", id, "error", err)
		return
	}
	r.log.Debug("autosave written", "draft_id", id, "events", len(env.Events))
}

// Flush cancels any pending debounce and writes the current envelope to the
// durable store immediately. Used by the explicit save gates.
func (r *Reconciler) Flush(ctx context.Context) error {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.pending = nil
	r.mu.Unlock()

	root := r.store.Root()
	if root.DraftID == "" {
		return nil
	}
	env := BuildEnvelope(r.store, r.summarize())
	return r.remote.Save(ctx, root.DraftID, env)
}

// Clear drops the session's cache entry and cancels pending autosaves.
// The durable record is cleared by the submit transaction.
func (r *Reconciler) Clear(ctx context.Context) error {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.pending = nil
	r.mu.Unlock()
	return r.cache.Clear(ctx, r.opts.CacheKey)
}

// Stop cancels the debounce timer without touching any tier.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.pending = nil
}

func (r *Reconciler) markHydrated() {
	r.mu.Lock()
	r.hydratedAt = time.Now()
	r.mu.Unlock()
}

func (r *Reconciler) overwriteCache(ctx context.Context, env *Envelope) {
	if err := r.cache.Save(ctx, r.opts.CacheKey, env); err != nil {
		r.log.Warn("overwriting local cache failed", "error", err)
	}
}
