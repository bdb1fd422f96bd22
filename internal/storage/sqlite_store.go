package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/logger"
	"github.com/julianstephens/challenge-radar/internal/models"
)

// SQLiteStore keeps the same single-record layout as the JSON store: the
// full collection serialized under the fixed storage identifier, in a
// key/payload table.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.initSchema(); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'radar init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.initSchema()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS board (
			key TEXT PRIMARY KEY,
			payload TEXT NOT NULL
		)`)
	return err
}

func (s *SQLiteStore) GetChallenges() ([]models.Challenge, error) {
	var payload string
	row := s.db.QueryRow("SELECT payload FROM board WHERE key = ?", constants.StorageKey)
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return []models.Challenge{}, nil
		}
		return nil, err
	}

	var challenges []models.Challenge
	if err := json.Unmarshal([]byte(payload), &challenges); err != nil {
		// Same policy as the JSON store: corrupt payloads start empty.
		logger.Warn("Unable to parse cached challenges, starting empty", "path", s.path, "error", err)
		return []models.Challenge{}, nil
	}
	if challenges == nil {
		challenges = []models.Challenge{}
	}

	return challenges, nil
}

func (s *SQLiteStore) SaveChallenges(challenges []models.Challenge) error {
	payload, err := json.Marshal(challenges)
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO board (key, payload)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload`,
		constants.StorageKey, string(payload))

	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
