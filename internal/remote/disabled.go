package remote

import (
	"context"

	apperrors "github.com/julianstephens/challenge-radar/internal/errors"
	"github.com/julianstephens/challenge-radar/internal/models"
)

// Disabled is the client used when no remote store is configured. Every
// operation is a harmless no-op so the board stays purely local.
type Disabled struct{}

func NewDisabled() *Disabled {
	return &Disabled{}
}

func (d *Disabled) Available() bool { return false }

func (d *Disabled) FetchAll(ctx context.Context) []models.Challenge {
	return []models.Challenge{}
}

func (d *Disabled) Upsert(ctx context.Context, c models.Challenge, ownerID string) error {
	return nil
}

func (d *Disabled) Delete(ctx context.Context, id string) error {
	return nil
}

func (d *Disabled) SignIn(ctx context.Context, email string) (*Session, error) {
	return nil, apperrors.ErrRemoteTransport
}

func (d *Disabled) SignOut(ctx context.Context) error { return nil }

func (d *Disabled) Session() *Session { return nil }

func (d *Disabled) OnSessionChange(fn func(*Session)) {}
