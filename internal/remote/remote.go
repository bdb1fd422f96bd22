// Package remote is the cloud side of the board: a CRUD challenge store
// keyed by user identity. It is only ever consulted through the sync
// coordinator, and every failure here is non-fatal by contract.
package remote

import (
	"context"

	"github.com/julianstephens/challenge-radar/internal/models"
)

// Session is the current signed-in identity.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Client is the remote collaborator contract consumed by the coordinator.
type Client interface {
	// Available reports whether a remote store is configured at all.
	Available() bool

	// FetchAll returns every challenge owned by the current session,
	// ordered by updated_at descending. On any fetch error it logs and
	// returns an empty list; it never fails the caller.
	FetchAll(ctx context.Context) []models.Challenge

	// Upsert writes one challenge, idempotent by id.
	Upsert(ctx context.Context, c models.Challenge, ownerID string) error

	// Delete removes one challenge by id.
	Delete(ctx context.Context, id string) error

	// SignIn resolves an identity credential to a session.
	SignIn(ctx context.Context, email string) (*Session, error)

	// SignOut clears the current session.
	SignOut(ctx context.Context) error

	// Session returns the current identity, or nil.
	Session() *Session

	// OnSessionChange registers a callback fired whenever the session
	// appears or disappears, including restoration at startup.
	OnSessionChange(fn func(*Session))
}
