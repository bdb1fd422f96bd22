// Package sync owns the in-memory challenge collection and reconciles it
// with the local store and the remote collaborator. It is the only
// writer to either: UI layers mutate exclusively through its operations.
//
// The design is local-first. Every mutation commits to memory and the
// local store synchronously before any remote call is issued; remote
// mirroring is best-effort and a mirror failure is logged, never rolled
// back. The updated_at stamp, not call order, is the reconciliation
// authority.
package sync

import (
	"context"
	"errors"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/challenge-radar/internal/constants"
	apperrors "github.com/julianstephens/challenge-radar/internal/errors"
	"github.com/julianstephens/challenge-radar/internal/logger"
	"github.com/julianstephens/challenge-radar/internal/models"
	"github.com/julianstephens/challenge-radar/internal/remote"
	"github.com/julianstephens/challenge-radar/internal/storage"
	"github.com/julianstephens/challenge-radar/internal/validation"
)

// State is the coordinator's sync state.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateSyncing
	StateIdle
	StateConflictPending
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateSyncing:
		return "syncing"
	case StateIdle:
		return "signed in"
	case StateConflictPending:
		return "conflict pending"
	default:
		return "anonymous"
	}
}

// Coordinator is the explicit state container for the board.
type Coordinator struct {
	mu      stdsync.Mutex
	store   storage.Provider
	client  remote.Client
	clock   func() time.Time
	mirrors stdsync.WaitGroup

	challenges []models.Challenge
	state      State
	conflict   *models.MergeConflict
	message    string

	// authGen identifies the active auth flow; async results carrying a
	// stale generation are discarded instead of being applied.
	authGen uint64
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock overrides the coordinator's time source.
func WithClock(clock func() time.Time) Option {
	return func(c *Coordinator) {
		c.clock = clock
	}
}

// New builds a coordinator over the local store and remote client and
// loads the persisted collection.
func New(store storage.Provider, client remote.Client, opts ...Option) (*Coordinator, error) {
	c := &Coordinator{
		store:  store,
		client: client,
		clock:  time.Now,
		state:  StateAnonymous,
	}
	for _, opt := range opts {
		opt(c)
	}

	challenges, err := store.GetChallenges()
	if err != nil {
		return nil, err
	}
	c.challenges = challenges

	client.OnSessionChange(c.handleSessionChange)
	return c, nil
}

// Bootstrap replays a restored session, triggering the same pull and
// compare a fresh sign-in would. Call it once after New.
func (c *Coordinator) Bootstrap(ctx context.Context) {
	if session := c.client.Session(); session != nil {
		c.hydrate(ctx, session)
	}
}

// Challenges returns a copy of the in-memory collection.
func (c *Coordinator) Challenges() []models.Challenge {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.CloneAll(c.challenges)
}

// State returns the current sync state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Message returns the most recent user-facing status message.
func (c *Coordinator) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Conflict returns the pending merge conflict, or nil.
func (c *Coordinator) Conflict() *models.MergeConflict {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conflict == nil {
		return nil
	}
	return &models.MergeConflict{
		Local:  models.CloneAll(c.conflict.Local),
		Remote: models.CloneAll(c.conflict.Remote),
	}
}

// Session returns the current remote identity, or nil.
func (c *Coordinator) Session() *remote.Session {
	return c.client.Session()
}

// Find returns the challenge with the given id.
func (c *Coordinator) Find(id string) (models.Challenge, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.challenges[i].Clone(), true
	}
	return models.Challenge{}, false
}

// Add validates and stores a new challenge, then mirrors it.
func (c *Coordinator) Add(ctx context.Context, challenge models.Challenge) (models.Challenge, error) {
	if err := validation.NormalizeChallenge(&challenge); err != nil {
		return models.Challenge{}, err
	}
	if challenge.ID == "" {
		challenge.ID = uuid.New().String()
	}
	challenge.Touch(c.clock())

	c.mu.Lock()
	c.challenges = append([]models.Challenge{challenge.Clone()}, c.challenges...)
	c.persistLocked()
	c.mu.Unlock()

	c.mirrorUpsert(ctx, challenge)
	return challenge, nil
}

// Update applies a field edit to one challenge, stamps it, and mirrors
// the result.
func (c *Coordinator) Update(ctx context.Context, id string, mutate func(*models.Challenge)) (models.Challenge, error) {
	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return models.Challenge{}, errors.New("challenge not found")
	}
	// Mutate a copy so a failed validation leaves the original intact.
	updated := c.challenges[i].Clone()
	mutate(&updated)
	if err := validation.NormalizeChallenge(&updated); err != nil {
		c.mu.Unlock()
		return models.Challenge{}, err
	}
	updated.Touch(c.clock())
	c.challenges[i] = updated.Clone()
	c.persistLocked()
	c.mu.Unlock()

	c.mirrorUpsert(ctx, updated)
	return updated, nil
}

// ToggleToday flips today's check-in on one challenge and reports the
// new value.
func (c *Coordinator) ToggleToday(ctx context.Context, id string) (bool, error) {
	today := c.clock().Format(constants.DateFormat)

	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return false, errors.New("challenge not found")
	}
	if c.challenges[i].Entries == nil {
		c.challenges[i].Entries = make(map[string]bool)
	}
	checked := !c.challenges[i].Entries[today]
	c.challenges[i].Entries[today] = checked
	c.challenges[i].Touch(c.clock())
	updated := c.challenges[i].Clone()
	c.persistLocked()
	c.mu.Unlock()

	c.mirrorUpsert(ctx, updated)
	return checked, nil
}

// ToggleReminders flips the reminder toggle on one challenge.
func (c *Coordinator) ToggleReminders(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return false, errors.New("challenge not found")
	}
	c.challenges[i].RemindersOn = !c.challenges[i].RemindersOn
	on := c.challenges[i].RemindersOn
	c.challenges[i].Touch(c.clock())
	updated := c.challenges[i].Clone()
	c.persistLocked()
	c.mu.Unlock()

	c.mirrorUpsert(ctx, updated)
	return on, nil
}

// Remove deletes a challenge locally and, when signed in, remotely.
func (c *Coordinator) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return errors.New("challenge not found")
	}
	c.challenges = append(c.challenges[:i], c.challenges[i+1:]...)
	c.persistLocked()
	c.mu.Unlock()

	if c.client.Session() != nil {
		c.mirrors.Add(1)
		go func() {
			defer c.mirrors.Done()
			if err := c.client.Delete(ctx, id); err != nil {
				logger.Warn("Failed to mirror delete to cloud", "id", id, "error", err)
			}
		}()
	}
	return nil
}

// MarkNotified records the day a reminder fired for a challenge. It only
// touches last_notified: no updated_at stamp and no remote mirror, so a
// concurrent user edit in the same tick is never clobbered.
func (c *Coordinator) MarkNotified(id, day string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return
	}
	c.challenges[i].LastNotified = day
	c.persistLocked()
}

// SignIn submits an identity credential to the remote store. A second
// attempt while one is resolving is rejected. On success the session
// change notification drives hydration before this returns.
func (c *Coordinator) SignIn(ctx context.Context, email string) error {
	c.mu.Lock()
	if c.state == StateAuthenticating {
		c.mu.Unlock()
		return apperrors.ErrAuthBusy
	}
	if !c.client.Available() {
		c.mu.Unlock()
		return errors.New("cloud sync is not configured")
	}
	c.state = StateAuthenticating
	c.authGen++
	gen := c.authGen
	c.mu.Unlock()

	_, err := c.client.SignIn(ctx, email)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.authGen {
		// A newer sign-in or sign-out superseded this flow.
		return nil
	}
	if err != nil {
		c.state = StateAnonymous
		if errors.Is(err, apperrors.ErrRateLimited) {
			c.message = "Too many sign-in attempts. Wait a minute and try again."
		} else {
			c.message = apperrors.Format(err)
		}
		return err
	}
	if c.state == StateAuthenticating {
		// Session change handling normally moved the state onward; this
		// covers clients that resolve without notifying.
		c.state = StateIdle
	}
	return nil
}

// SignOut clears the session; later mutations stay purely local. The
// local store keeps its last known collection.
func (c *Coordinator) SignOut(ctx context.Context) error {
	c.mu.Lock()
	c.authGen++
	c.mu.Unlock()

	if err := c.client.SignOut(ctx); err != nil {
		logger.Warn("Sign-out failed", "error", err)
	}

	c.mu.Lock()
	c.state = StateAnonymous
	c.message = "Signed out."
	c.mu.Unlock()
	return nil
}

// Resolve applies a conflict strategy, adopts the result into memory and
// the local store, pushes when the strategy requires it, and clears the
// conflict.
func (c *Coordinator) Resolve(ctx context.Context, strategy constants.Strategy) error {
	c.mu.Lock()
	if c.conflict == nil {
		c.mu.Unlock()
		return apperrors.ErrNoConflict
	}
	session := c.client.Session()
	if session == nil {
		c.mu.Unlock()
		return apperrors.ErrNotSignedIn
	}

	var chosen []models.Challenge
	switch strategy {
	case constants.StrategyRemote:
		chosen = models.CloneAll(c.conflict.Remote)
	case constants.StrategyLocal:
		chosen = models.CloneAll(c.conflict.Local)
	case constants.StrategyMerge:
		chosen = Merge(c.conflict.Local, c.conflict.Remote)
	default:
		c.mu.Unlock()
		return errors.New("unknown resolution strategy: " + string(strategy))
	}

	c.adoptLocked(chosen)
	c.conflict = nil
	c.state = StateSyncing
	c.mu.Unlock()

	// The remote snapshot is already canonical on the server; only the
	// other strategies push. Re-pushing unchanged items is idempotent.
	if strategy != constants.StrategyRemote {
		for _, item := range chosen {
			if err := c.client.Upsert(ctx, item, session.UserID); err != nil {
				logger.Warn("Failed to push resolved challenge", "id", item.ID, "error", err)
			}
		}
	}

	c.mu.Lock()
	c.state = StateIdle
	switch strategy {
	case constants.StrategyMerge:
		c.message = "Merged local and cloud data."
	case constants.StrategyRemote:
		c.message = "Using cloud data."
	default:
		c.message = "Uploaded this device data to cloud."
	}
	c.mu.Unlock()
	return nil
}

// Flush waits for in-flight remote mirrors; call before process exit.
func (c *Coordinator) Flush() {
	c.mirrors.Wait()
}

// handleSessionChange reacts to the remote store's out-of-band session
// notifications: restoration and direct sign-in confirmation hydrate,
// disappearance drops to anonymous.
func (c *Coordinator) handleSessionChange(session *remote.Session) {
	if session == nil {
		c.mu.Lock()
		c.state = StateAnonymous
		c.mu.Unlock()
		return
	}
	c.hydrate(context.Background(), session)
}

// hydrate pulls the full remote collection and compares it against the
// local store snapshot (not the in-memory collection, to avoid racing an
// in-flight local edit).
func (c *Coordinator) hydrate(ctx context.Context, session *remote.Session) {
	c.mu.Lock()
	gen := c.authGen
	c.state = StateSyncing
	c.mu.Unlock()

	remoteSet := c.client.FetchAll(ctx)
	localSnap, err := c.store.GetChallenges()
	if err != nil {
		logger.Warn("Failed to read local snapshot during hydration", "error", err)
		localSnap = nil
	}

	c.mu.Lock()
	if c.stale(gen, session) {
		c.mu.Unlock()
		return
	}

	switch {
	case len(remoteSet) == 0 && len(localSnap) == 0:
		c.state = StateIdle
		c.message = ""
		c.mu.Unlock()

	case len(remoteSet) > 0 && len(localSnap) == 0:
		c.adoptLocked(remoteSet)
		c.state = StateIdle
		c.message = "Synced from cloud."
		c.mu.Unlock()

	case len(remoteSet) == 0 && len(localSnap) > 0:
		c.mu.Unlock()
		for _, item := range localSnap {
			if err := c.client.Upsert(ctx, item, session.UserID); err != nil {
				logger.Warn("Failed to upload local challenge", "id", item.ID, "error", err)
			}
		}
		refreshed := c.client.FetchAll(ctx)

		c.mu.Lock()
		if c.stale(gen, session) {
			c.mu.Unlock()
			return
		}
		if len(refreshed) > 0 {
			c.adoptLocked(refreshed)
			c.message = "Uploaded local data to cloud."
		}
		c.state = StateIdle
		c.mu.Unlock()

	default:
		// Both sides hold data: surface the conflict and freeze both
		// snapshots until the user picks a strategy.
		c.conflict = &models.MergeConflict{
			Local:  localSnap,
			Remote: remoteSet,
		}
		c.state = StateConflictPending
		c.message = "Found data in cloud and on this device. Choose how to merge."
		c.mu.Unlock()
	}
}

// stale reports whether an async result belongs to a superseded flow.
// Caller must hold the lock.
func (c *Coordinator) stale(gen uint64, session *remote.Session) bool {
	if gen != c.authGen {
		return true
	}
	current := c.client.Session()
	return current == nil || current.UserID != session.UserID
}

// adoptLocked replaces the in-memory collection and rewrites the local
// store. Caller must hold the lock.
func (c *Coordinator) adoptLocked(challenges []models.Challenge) {
	c.challenges = models.CloneAll(challenges)
	c.persistLocked()
}

// persistLocked rewrites the local store synchronously; it always runs
// before any remote mirror for the same mutation is issued.
func (c *Coordinator) persistLocked() {
	if err := c.store.SaveChallenges(c.challenges); err != nil {
		logger.Error("Failed to persist board", "error", err)
	}
}

// mirrorUpsert mirrors one mutation to the remote store, fire-and-forget.
func (c *Coordinator) mirrorUpsert(ctx context.Context, challenge models.Challenge) {
	session := c.client.Session()
	if session == nil {
		return
	}
	c.mirrors.Add(1)
	go func() {
		defer c.mirrors.Done()
		if err := c.client.Upsert(ctx, challenge, session.UserID); err != nil {
			logger.Warn("Failed to mirror challenge to cloud", "id", challenge.ID, "error", err)
		}
	}()
}

func (c *Coordinator) indexLocked(id string) int {
	for i := range c.challenges {
		if c.challenges[i].ID == id {
			return i
		}
	}
	return -1
}
