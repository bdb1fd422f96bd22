package storage

import "github.com/julianstephens/challenge-radar/internal/models"

// Provider is the durable local store: the single source of truth when
// offline. The full collection is read at startup and rewritten in full
// on every change.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Collection
	GetChallenges() ([]models.Challenge, error)
	SaveChallenges([]models.Challenge) error

	// Utils
	GetConfigPath() string
}
