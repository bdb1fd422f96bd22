package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/challenge-radar/internal/logger"
)

// Failure taxonomy. Remote-facing errors are non-fatal by design: the
// local store commits first, so every one of these is locally
// recoverable.
var (
	// ErrStorageParse marks a corrupt local payload; callers treat the
	// collection as empty rather than failing startup.
	ErrStorageParse = errors.New("stored board data is corrupt")

	// ErrRemoteTransport marks a network or query failure against the
	// remote store. Logged and surfaced as a transient message, never
	// retried in a loop.
	ErrRemoteTransport = errors.New("cloud sync request failed")

	// ErrRateLimited marks an auth flow rejected for frequency.
	ErrRateLimited = errors.New("too many sign-in attempts, wait a minute and try again")

	// ErrAuthBusy is returned while a previous sign-in is still resolving.
	ErrAuthBusy = errors.New("a sign-in attempt is already in progress")

	// ErrNotSignedIn is returned by operations that need a session.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrNoConflict is returned when a resolution is requested but no
	// conflict is pending.
	ErrNoConflict = errors.New("no sync conflict to resolve")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
