package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/challenge-radar/internal/models"
)

func TestBuild(t *testing.T) {
	c := models.Challenge{
		ID:           "c1",
		Title:        "Morning pages",
		Description:  "Write three pages",
		StartDate:    "2026-01-05",
		TotalDays:    30,
		ReminderTime: "07:30",
	}
	stamp := time.Date(2026, 1, 4, 18, 45, 0, 0, time.UTC)

	want := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Challenge Radar//EN",
		"X-WR-CALNAME:Morning pages",
		"BEGIN:VEVENT",
		"UID:c1@challenge-radar",
		"DTSTAMP:20260104T184500",
		"DTSTART:20260105T073000",
		"DTEND:20260105T080000",
		"RRULE:FREQ=DAILY;COUNT=30",
		"SUMMARY:Morning pages",
		"DESCRIPTION:Write three pages",
		"BEGIN:VALARM",
		"TRIGGER:-PT15M",
		"ACTION:DISPLAY",
		"DESCRIPTION:Morning pages check-in",
		"END:VALARM",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	if got := Build(c, stamp); got != want {
		t.Errorf("Build() mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestBuildDefaultDescription(t *testing.T) {
	c := models.Challenge{
		ID:           "c1",
		Title:        "Stretch",
		StartDate:    "2026-01-05",
		TotalDays:    7,
		ReminderTime: "09:00",
	}
	got := Build(c, time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC))
	if !strings.Contains(got, "DESCRIPTION:Daily check-in\r\n") {
		t.Error("empty description should fall back to the daily check-in text")
	}
}

func TestBuildEventWrapsMidnight(t *testing.T) {
	c := models.Challenge{
		ID:           "c1",
		Title:        "Night owl",
		StartDate:    "2026-01-05",
		TotalDays:    7,
		ReminderTime: "23:45",
	}
	got := Build(c, time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC))
	if !strings.Contains(got, "DTSTART:20260105T234500") {
		t.Error("event start not derived from the reminder time")
	}
	if !strings.Contains(got, "DTEND:20260105T001500") {
		t.Error("event end should wrap past midnight")
	}
}

func TestBuildUsesCRLF(t *testing.T) {
	c := models.Challenge{ID: "c1", Title: "x", StartDate: "2026-01-05", TotalDays: 1, ReminderTime: "09:00"}
	got := Build(c, time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC))
	if strings.Contains(strings.ReplaceAll(got, "\r\n", ""), "\n") {
		t.Error("calendar lines must be CRLF separated")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Morning pages", "morning-pages.ics"},
		{"30-Day Photo Sprint", "30-day-photo-sprint.ics"},
		{"Hello, World!", "hello-world.ics"},
		{"  spaced  out  ", "spaced-out.ics"},
		{"***", "challenge.ics"},
		{"", "challenge.ics"},
		{"Déjà vu", "d-j-vu.ics"},
	}
	for _, tt := range tests {
		c := models.Challenge{Title: tt.title}
		if got := Filename(c); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
