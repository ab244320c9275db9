package draft

import (
	"context"
	"errors"
)

// ErrNoEnvelope is returned by a tier's Load when no envelope exists for the
// given key.
var ErrNoEnvelope = errors.New("no envelope stored")

// Tier is one persistence backend for draft envelopes. The local cache is
// synchronous and always available; the durable store may fail transiently.
type Tier interface {
	Load(ctx context.Context, key string) (*Envelope, error)
	Save(ctx context.Context, key string, env *Envelope) error
	Clear(ctx context.Context, key string) error
}

// RemoteStore is the durable tier. Beyond envelope storage it resolves the
// name-based entry point to a draft id.
type RemoteStore interface {
	Tier
	// FindIDByName resolves the most recently created root matching name.
	FindIDByName(ctx context.Context, name string) (string, error)
}
