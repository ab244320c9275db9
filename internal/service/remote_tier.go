package service

import (
	"context"
	"errors"

	"github.com/avinashkumarr/studiobook/internal/draft"
	"github.com/avinashkumarr/studiobook/internal/pricing"
)

// RemoteDraftTier adapts the draft service to the reconciler's durable tier
// contract: envelopes keyed by draft id, plus name resolution for the
// resume-by-name entry point.
type RemoteDraftTier struct {
	svc DraftService
}

// NewRemoteDraftTier wraps svc as a draft.RemoteStore.
func NewRemoteDraftTier(svc DraftService) *RemoteDraftTier {
	return &RemoteDraftTier{svc: svc}
}

var _ draft.RemoteStore = (*RemoteDraftTier)(nil)

func (t *RemoteDraftTier) Load(ctx context.Context, key string) (*draft.Envelope, error) {
	payload, err := t.svc.GetDraftEnvelope(ctx, key)
	if err == nil {
		return draft.DecodeEnvelope(payload)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// No envelope yet: the root may exist with events but no autosave
	// having fired. Rebuild from the durable rows.
	root, err := t.svc.FetchProjectRecord(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, draft.ErrNoEnvelope
		}
		return nil, err
	}
	events, err := t.svc.ListEventPackages(ctx, key)
	if err != nil {
		return nil, err
	}
	return draft.EnvelopeFromRecord(root, events, pricing.Summarize(events, pricing.DefaultRates())), nil
}

func (t *RemoteDraftTier) Save(ctx context.Context, key string, env *draft.Envelope) error {
	payload, err := env.Encode()
	if err != nil {
		return err
	}
	return t.svc.UpdateDraftEnvelope(ctx, key, payload)
}

func (t *RemoteDraftTier) Clear(ctx context.Context, key string) error {
	return t.svc.DeleteDraftEnvelope(ctx, key)
}

func (t *RemoteDraftTier) FindIDByName(ctx context.Context, name string) (string, error) {
	id, err := t.svc.FindProjectIDByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", draft.ErrNoEnvelope
		}
		return "", err
	}
	return id, nil
}
