package constants

import "time"

// Status represents a challenge's derived completion status
type Status string

// Filter represents a board view filter
type Filter string

// Strategy represents a conflict resolution strategy
type Strategy string

const (
	AppName            = "challenge-radar"
	DefaultKeyringUser = "session"
	DefaultConfigPath  = "~/.config/challenge-radar/board.json"
	Version            = "v0.3.0"

	// KeyringConnectionKey stores the remote connection string in the
	// OS keyring, as an alternative to RADAR_DB_CONNECTION.
	KeyringConnectionKey = "database-connection"

	// StorageKey is the versioned identifier the full collection is
	// persisted under, in both the JSON and SQLite local stores.
	StorageKey = "challenge-radar:v1"

	// RemoteTable is the remote collaborator's challenge table.
	RemoteTable = "challenges"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Reminder scan constants
	ReminderScanInterval = 30 * time.Second
	CalendarEventMinutes = 30
	CalendarAlarmMinutes = 15

	// TodayFocusLimit caps the "check off today" shortlist.
	TodayFocusLimit = 3

	// Default form values
	DefaultTotalDays    = 30
	DefaultReminderTime = "09:00"

	// Notify constants
	NotifierLockfileName   = "radar-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.challenge-radar"

	// Status constants
	StatusCompleted Status = "completed"
	StatusBehind    Status = "behind"
	StatusOnTrack   Status = "on-track"

	// Filter constants
	FilterToday     Filter = "today"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterUpcoming  Filter = "upcoming"
	FilterAll       Filter = "all"

	// Conflict strategies
	StrategyRemote Strategy = "remote"
	StrategyLocal  Strategy = "local"
	StrategyMerge  Strategy = "merge"
)
