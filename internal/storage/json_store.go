package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/logger"
	"github.com/julianstephens/challenge-radar/internal/models"
)

// boardFile is the persisted layout: one versioned record mapping the
// fixed storage identifier to the full challenge array.
type boardFile map[string][]models.Challenge

type JSONStore struct {
	path       string
	challenges []models.Challenge
	loaded     bool
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.challenges = []models.Challenge{}
	s.loaded = true
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'radar init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	file := boardFile{}
	if err := json.Unmarshal(data, &file); err != nil {
		// Corrupt payloads never block startup; start from empty.
		logger.Warn("Unable to parse cached challenges, starting empty", "path", s.path, "error", err)
		s.challenges = []models.Challenge{}
		s.loaded = true
		return nil
	}

	s.challenges = file[constants.StorageKey]
	if s.challenges == nil {
		s.challenges = []models.Challenge{}
	}
	s.loaded = true
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetChallenges() ([]models.Challenge, error) {
	if !s.loaded {
		if err := s.Load(); err != nil {
			return nil, err
		}
	}
	return models.CloneAll(s.challenges), nil
}

func (s *JSONStore) SaveChallenges(challenges []models.Challenge) error {
	s.challenges = models.CloneAll(challenges)
	s.loaded = true
	return s.save()
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(boardFile{constants.StorageKey: s.challenges}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write atomically: temp file then rename
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to save storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
