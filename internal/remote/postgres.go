package remote

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	pq "github.com/lib/pq"

	"github.com/julianstephens/challenge-radar/internal/constants"
	apperrors "github.com/julianstephens/challenge-radar/internal/errors"
	"github.com/julianstephens/challenge-radar/internal/keyring"
	"github.com/julianstephens/challenge-radar/internal/logger"
	"github.com/julianstephens/challenge-radar/internal/models"
)

// PostgresClient implements Client against a Postgres challenge store.
// The signed-in session is persisted in the OS keyring so identity
// survives process restarts.
type PostgresClient struct {
	connStr   string
	db        *sql.DB
	session   *Session
	listeners []func(*Session)
}

// NewPostgresClient builds a client for the given connection string. The
// session, if any, is restored from the keyring.
func NewPostgresClient(connStr string) *PostgresClient {
	c := &PostgresClient{connStr: connStr}
	c.restoreSession()
	return c
}

// HasEmbeddedCredentials reports whether a URL-style connection string
// carries a password. Credentials belong in the keyring or .pgpass.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, has := u.User.Password()
	return has
}

func (c *PostgresClient) Available() bool {
	return strings.TrimSpace(c.connStr) != ""
}

func (c *PostgresClient) open() (*sql.DB, error) {
	if c.db != nil {
		return c.db, nil
	}
	db, err := sql.Open("postgres", c.connStr)
	if err != nil {
		return nil, classify(err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	c.db = db
	return db, nil
}

// Close releases the underlying connection pool.
func (c *PostgresClient) Close() error {
	if c.db != nil {
		err := c.db.Close()
		c.db = nil
		return err
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE
		)`)
	if err != nil {
		return classify(err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS ` + constants.RemoteTable + ` (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			start_date TEXT NOT NULL,
			total_days INTEGER NOT NULL,
			reminder_time TEXT NOT NULL,
			reminders_on BOOLEAN NOT NULL,
			entries TEXT NOT NULL,
			last_notified TEXT,
			updated_at TEXT
		)`)
	if err != nil {
		return classify(err)
	}
	return nil
}

// FetchAll implements Client.FetchAll. Fetch errors are logged and
// reported as an empty collection so hydration can proceed offline.
func (c *PostgresClient) FetchAll(ctx context.Context) []models.Challenge {
	session := c.Session()
	if session == nil {
		return []models.Challenge{}
	}

	db, err := c.open()
	if err != nil {
		logger.Warn("Remote fetch failed", "error", err)
		return []models.Challenge{}
	}

	rows, err := db.QueryContext(ctx, `
SELECT id, owner_id, title, description, start_date, total_days, reminder_time,
       reminders_on, entries, last_notified, updated_at
FROM `+constants.RemoteTable+`
WHERE owner_id = $1
ORDER BY updated_at DESC NULLS LAST`, session.UserID)
	if err != nil {
		logger.Warn("Remote fetch failed", "error", classify(err))
		return []models.Challenge{}
	}
	defer rows.Close()

	var challenges []models.Challenge
	for rows.Next() {
		var r challengeRow
		if err := rows.Scan(
			&r.ID, &r.OwnerID, &r.Title, &r.Description, &r.StartDate, &r.TotalDays,
			&r.ReminderTime, &r.RemindersOn, &r.Entries, &r.LastNotified, &r.UpdatedAt,
		); err != nil {
			logger.Warn("Remote fetch failed", "error", err)
			return []models.Challenge{}
		}
		challenge, err := r.challenge()
		if err != nil {
			logger.Warn("Skipping unreadable remote challenge", "id", r.ID, "error", err)
			continue
		}
		challenges = append(challenges, challenge)
	}
	if err := rows.Err(); err != nil {
		logger.Warn("Remote fetch failed", "error", classify(err))
		return []models.Challenge{}
	}

	if challenges == nil {
		challenges = []models.Challenge{}
	}
	return challenges
}

// Upsert implements Client.Upsert, idempotent by challenge id.
func (c *PostgresClient) Upsert(ctx context.Context, challenge models.Challenge, ownerID string) error {
	db, err := c.open()
	if err != nil {
		return err
	}

	row, err := newChallengeRow(challenge, ownerID)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
INSERT INTO `+constants.RemoteTable+` (id, owner_id, title, description, start_date, total_days,
                        reminder_time, reminders_on, entries, last_notified, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
	owner_id = EXCLUDED.owner_id,
	title = EXCLUDED.title,
	description = EXCLUDED.description,
	start_date = EXCLUDED.start_date,
	total_days = EXCLUDED.total_days,
	reminder_time = EXCLUDED.reminder_time,
	reminders_on = EXCLUDED.reminders_on,
	entries = EXCLUDED.entries,
	last_notified = EXCLUDED.last_notified,
	updated_at = EXCLUDED.updated_at`,
		row.ID, row.OwnerID, row.Title, row.Description, row.StartDate, row.TotalDays,
		row.ReminderTime, row.RemindersOn, string(row.Entries), row.LastNotified, row.UpdatedAt)
	if err != nil {
		return classify(err)
	}
	return nil
}

// Delete implements Client.Delete.
func (c *PostgresClient) Delete(ctx context.Context, id string) error {
	db, err := c.open()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM `+constants.RemoteTable+` WHERE id = $1`, id); err != nil {
		return classify(err)
	}
	return nil
}

// SignIn resolves an email to an account, creating one on first use,
// and persists the session in the OS keyring.
func (c *PostgresClient) SignIn(ctx context.Context, email string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address %q", email)
	}

	db, err := c.open()
	if err != nil {
		return nil, err
	}

	var userID string
	err = db.QueryRowContext(ctx, `
INSERT INTO accounts (id, email)
VALUES ($1, $2)
ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
RETURNING id`, uuid.New().String(), email).Scan(&userID)
	if err != nil {
		return nil, classify(err)
	}

	session := &Session{UserID: userID, Email: email}
	if err := c.persistSession(session); err != nil {
		logger.Warn("Failed to persist session in keyring", "error", err)
	}
	c.session = session
	c.notify(session)
	return session, nil
}

// SignOut clears the session from memory and the keyring.
func (c *PostgresClient) SignOut(ctx context.Context) error {
	c.session = nil
	if err := keyring.Delete(constants.DefaultKeyringUser); err != nil && err != keyring.ErrNotFound {
		logger.Warn("Failed to clear session from keyring", "error", err)
	}
	c.notify(nil)
	return nil
}

func (c *PostgresClient) Session() *Session {
	return c.session
}

func (c *PostgresClient) OnSessionChange(fn func(*Session)) {
	c.listeners = append(c.listeners, fn)
}

func (c *PostgresClient) notify(session *Session) {
	for _, fn := range c.listeners {
		fn(session)
	}
}

func (c *PostgresClient) persistSession(session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return keyring.Set(constants.DefaultKeyringUser, string(data))
}

func (c *PostgresClient) restoreSession() {
	data, err := keyring.Get(constants.DefaultKeyringUser)
	if err != nil {
		if err != keyring.ErrNotFound {
			logger.Debug("Keyring unavailable, starting anonymous", "error", err)
		}
		return
	}
	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		logger.Warn("Stored session is corrupt, starting anonymous", "error", err)
		return
	}
	c.session = &session
}

// classify maps driver errors onto the app taxonomy. Connection
// exhaustion surfaces as a rate limit; everything else is transport.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code.Class() == "53" {
			return fmt.Errorf("%w: %v", apperrors.ErrRateLimited, err)
		}
	}
	return fmt.Errorf("%w: %v", apperrors.ErrRemoteTransport, err)
}
