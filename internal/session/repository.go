// Package session owns everything between the upstream Session Data
// Provider and the comparison engine: fetching raw session documents,
// validating them into typed domain records, and caching them in sqlite so
// a session is fetched at most once per (season, event, kind).
package session

import (
	"context"
	"fmt"

	"github.com/paddock-data/lapdelta/internal/f1"
	"github.com/paddock-data/lapdelta/internal/monitoring"
)

// Key identifies one session.
type Key struct {
	Season int
	Event  string
	Kind   f1.SessionKind
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%s/%s", k.Season, k.Event, k.Kind)
}

// Repository hands out fully materialised, immutable sessions. It replaces
// the hidden process-wide cache of the upstream library with an explicit,
// injectable dependency.
type Repository interface {
	Get(ctx context.Context, key Key) (*f1.Session, error)
}

// CachingRepository is the production Repository: sqlite cache in front of
// the provider client.
type CachingRepository struct {
	store    *Store
	provider *Provider
}

// NewCachingRepository wires a store and provider into a Repository.
func NewCachingRepository(store *Store, provider *Provider) *CachingRepository {
	return &CachingRepository{store: store, provider: provider}
}

// Get returns the session for key, from cache when possible. Payloads are
// decoded and validated on every load so a corrupt cache entry surfaces as
// an error rather than as malformed laps downstream.
func (r *CachingRepository) Get(ctx context.Context, key Key) (*f1.Session, error) {
	payload, ok, err := r.store.Load(key)
	if err != nil {
		return nil, err
	}
	if ok {
		s, err := DecodeSession(payload)
		if err != nil {
			return nil, fmt.Errorf("cached session %s: %w", key, err)
		}
		return s, nil
	}

	monitoring.Logf("session %s not cached, fetching from provider", key)
	payload, err = r.provider.FetchRaw(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", key, err)
	}
	s, err := DecodeSession(payload)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", key, err)
	}
	if err := r.store.Save(key, payload); err != nil {
		// A failed cache write is not fatal; the session is already decoded.
		monitoring.Logf("failed to cache session %s: %v", key, err)
	}
	return s, nil
}
