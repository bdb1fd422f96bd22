package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/challenge-radar/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func stubConfigDir(t *testing.T, dir string) {
	t.Helper()
	old := userConfigDirFunc
	t.Cleanup(func() { userConfigDirFunc = old })
	userConfigDirFunc = func() (string, error) { return dir, nil }
}

func stubProcess(t *testing.T, proc ps.Process, err error) {
	t.Helper()
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = func(pid int) (ps.Process, error) { return proc, err }
}

func writeLockfile(t *testing.T, dir, content string) string {
	t.Helper()
	trayDir := filepath.Join(dir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(trayDir, constants.NotifierLockfileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	stubConfigDir(t, tempDir)

	t.Run("default location", func(t *testing.T) {
		dir, err := GetTrayAppConfigDir()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := filepath.Join(tempDir, constants.TrayAppIdentifier)
		if dir != want {
			t.Errorf("GetTrayAppConfigDir() = %q, want %q", dir, want)
		}
	})

	t.Run("settings override", func(t *testing.T) {
		trayDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
		if err := os.MkdirAll(trayDir, 0755); err != nil {
			t.Fatal(err)
		}
		customDir := "/custom/radar/lockfiles"
		settings := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
		if err := os.WriteFile(filepath.Join(trayDir, "settings.json"), []byte(settings), 0644); err != nil {
			t.Fatal(err)
		}

		dir, err := GetTrayAppConfigDir()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir != customDir {
			t.Errorf("GetTrayAppConfigDir() = %q, want %q", dir, customDir)
		}
	})
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	lockDir := t.TempDir()
	lockfilePath := filepath.Join(lockDir, constants.NotifierLockfileName)

	write := func(content string) {
		if err := os.WriteFile(lockfilePath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("missing lockfile", func(t *testing.T) {
		if _, _, err := findAndValidateTrayProcess(filepath.Join(lockDir, "nope.lock")); err == nil {
			t.Error("expected error for missing lockfile")
		}
	})

	badContents := []struct {
		name    string
		content string
	}{
		{"two parts", "8080|12345"},
		{"no separators", "invalid"},
		{"empty port", "|12345|secret"},
		{"non-numeric port", "eighty|12345|secret"},
		{"port out of range", "70000|12345|secret"},
		{"non-numeric pid", "8080|abc|secret"},
		{"empty secret", "8080|12345| "},
	}
	for _, tt := range badContents {
		t.Run(tt.name, func(t *testing.T) {
			write(tt.content)
			if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
				t.Errorf("expected error for lockfile %q", tt.content)
			}
		})
	}

	t.Run("process not running", func(t *testing.T) {
		write("8080|12345|secret")
		stubProcess(t, nil, nil)
		if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
			t.Error("expected error when process is gone")
		}
	})

	t.Run("wrong executable", func(t *testing.T) {
		write("8080|12345|secret")
		stubProcess(t, &mockProcess{pid: 12345, executable: "impostor"}, nil)
		if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
			t.Error("expected error for an unrelated process")
		}
	})

	t.Run("valid", func(t *testing.T) {
		write("8080|12345|secret")
		stubProcess(t, &mockProcess{pid: 12345, executable: "radar-tray"}, nil)
		port, secret, err := findAndValidateTrayProcess(lockfilePath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if port != "8080" || secret != "secret" {
			t.Errorf("got port %q secret %q, want 8080/secret", port, secret)
		}
	})
}

func TestPermission(t *testing.T) {
	t.Run("default without lockfile", func(t *testing.T) {
		stubConfigDir(t, t.TempDir())
		if got := New().Permission(); got != PermissionDefault {
			t.Errorf("Permission() = %q, want default", got)
		}
	})

	t.Run("denied with stale lockfile", func(t *testing.T) {
		tempDir := t.TempDir()
		stubConfigDir(t, tempDir)
		writeLockfile(t, tempDir, "8080|12345|secret")
		stubProcess(t, nil, nil)
		if got := New().Permission(); got != PermissionDenied {
			t.Errorf("Permission() = %q, want denied", got)
		}
	})

	t.Run("granted with live tray", func(t *testing.T) {
		tempDir := t.TempDir()
		stubConfigDir(t, tempDir)
		writeLockfile(t, tempDir, "8080|12345|secret")
		stubProcess(t, &mockProcess{pid: 12345, executable: "radar-tray"}, nil)
		if got := New().Permission(); got != PermissionGranted {
			t.Errorf("Permission() = %q, want granted", got)
		}
	})
}

func TestNotify(t *testing.T) {
	var gotSecret string
	var gotPayload WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Radar-Secret")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	port := server.URL[strings.LastIndex(server.URL, ":")+1:]

	tempDir := t.TempDir()
	stubConfigDir(t, tempDir)
	writeLockfile(t, tempDir, fmt.Sprintf("%s|12345|hunter2", port))
	stubProcess(t, &mockProcess{pid: 12345, executable: "radar-tray"}, nil)

	if err := New().Notify("Challenge a: mark today as done"); err != nil {
		t.Fatalf("Notify() returned unexpected error: %v", err)
	}
	if gotSecret != "hunter2" {
		t.Errorf("secret header = %q, want hunter2", gotSecret)
	}
	if gotPayload.Text != "Challenge a: mark today as done" {
		t.Errorf("payload text = %q", gotPayload.Text)
	}
	if gotPayload.DurationMs != constants.NotificationDurationMs {
		t.Errorf("payload duration = %d, want %d", gotPayload.DurationMs, constants.NotificationDurationMs)
	}
}

func TestNotifyRejectedByTray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad secret", http.StatusUnauthorized)
	}))
	defer server.Close()

	port := server.URL[strings.LastIndex(server.URL, ":")+1:]

	tempDir := t.TempDir()
	stubConfigDir(t, tempDir)
	writeLockfile(t, tempDir, fmt.Sprintf("%s|12345|wrong", port))
	stubProcess(t, &mockProcess{pid: 12345, executable: "radar-tray"}, nil)

	if err := New().Notify("hello"); err == nil {
		t.Error("Notify() should surface a non-200 response")
	}
}
