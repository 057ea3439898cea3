// Package session ties one signed-in user's in-memory store to its
// persistence tiers with an explicit lifecycle: created at sign-in,
// hydrated from the dual-tier store, torn down at sign-out. Teardown
// cancels the debounce timer so a stale write can never reach a different
// user's remote namespace.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/trackflow/internal/store"
)

// Session owns the track-flow state for one user.
type Session struct {
	userID uuid.UUID
	flow   *store.TrackFlow
	dual   *store.DualTier
	closed bool
}

// Open hydrates a session for the user: remote state if reachable,
// migrated local cache otherwise.
func Open(ctx context.Context, userID uuid.UUID, dual *store.DualTier) (*Session, error) {
	if dual == nil {
		return nil, fmt.Errorf("session requires a dual-tier store")
	}

	seed, err := dual.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate session for %s: %w", userID, err)
	}

	return &Session{
		userID: userID,
		flow:   store.NewTrackFlow(userID, seed, dual),
		dual:   dual,
	}, nil
}

// UserID returns the owning user's id.
func (s *Session) UserID() uuid.UUID {
	return s.userID
}

// Flow returns the mutable track-flow container. Nil after Close.
func (s *Session) Flow() *store.TrackFlow {
	if s.closed {
		return nil
	}
	return s.flow
}

// Flush commits any pending remote write immediately. One-shot commands
// call this before Close so their mutation reaches the remote tier.
func (s *Session) Flush(ctx context.Context) {
	if s.closed {
		return
	}
	s.dual.Flush(ctx)
}

// Close tears the session down and cancels any pending remote write.
// Idempotent.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.flow = nil
	s.dual.Close()
}
