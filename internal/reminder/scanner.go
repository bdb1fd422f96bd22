// Package reminder runs the periodic check-in reminder scan.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/logger"
	"github.com/julianstephens/challenge-radar/internal/models"
	"github.com/julianstephens/challenge-radar/internal/notifier"
	"github.com/julianstephens/challenge-radar/internal/sync"
	"github.com/julianstephens/challenge-radar/internal/utils"
)

// Notifier is the external notification capability the scanner queries.
type Notifier interface {
	Permission() notifier.Permission
	Notify(text string) error
}

// Scanner fires one reminder per challenge per day, at the challenge's
// reminder time, unless today is already checked in.
type Scanner struct {
	coord    *sync.Coordinator
	notifier Notifier
	interval time.Duration
	clock    func() time.Time
}

func New(coord *sync.Coordinator, n Notifier) *Scanner {
	return &Scanner{
		coord:    coord,
		notifier: n,
		interval: constants.ReminderScanInterval,
		clock:    time.Now,
	}
}

// WithInterval overrides the scan interval.
func (s *Scanner) WithInterval(interval time.Duration) *Scanner {
	s.interval = interval
	return s
}

// WithClock overrides the scanner's time source.
func (s *Scanner) WithClock(clock func() time.Time) *Scanner {
	s.clock = clock
	return s
}

// Run scans on a fixed interval until the context is cancelled.
func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Scan()
		}
	}
}

// Scan fires reminders due at the current instant. It returns the number
// of notifications delivered.
func (s *Scanner) Scan() int {
	if s.notifier.Permission() != notifier.PermissionGranted {
		return 0
	}

	now := s.clock()
	currentClock := utils.ClockKey(now)
	today := utils.DayKey(now)

	fired := 0
	for _, c := range s.coord.Challenges() {
		if !due(c, currentClock, today) {
			continue
		}
		if err := s.notifier.Notify(fmt.Sprintf("%s: mark today as done", c.Title)); err != nil {
			logger.Warn("Failed to deliver reminder", "id", c.ID, "error", err)
			continue
		}
		// Dedupe bookkeeping only; never clobbers a concurrent edit.
		s.coord.MarkNotified(c.ID, today)
		fired++
	}
	return fired
}

// due reports whether a challenge's reminder should fire right now.
func due(c models.Challenge, currentClock, today string) bool {
	if !c.RemindersOn || c.ReminderTime != currentClock {
		return false
	}
	if c.Entries[today] {
		return false
	}
	return c.LastNotified != today
}
