// Package ics emits one calendar event per challenge: a daily-repeating
// 30-minute block at the reminder time, counted to the challenge length,
// with a 15-minute display alarm.
package ics

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/models"
	"github.com/julianstephens/challenge-radar/internal/utils"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Build renders the VCALENDAR text for one challenge. The stamp is the
// generation instant recorded in DTSTAMP. Lines are CRLF-joined per RFC
// 5545.
func Build(c models.Challenge, stamp time.Time) string {
	start := strings.ReplaceAll(c.StartDate, "-", "")
	begin := strings.Replace(c.ReminderTime, ":", "", 1)

	end, err := utils.AddMinutesToClock(c.ReminderTime, constants.CalendarEventMinutes)
	if err != nil {
		end = c.ReminderTime
	}
	end = strings.Replace(end, ":", "", 1)

	description := c.Description
	if description == "" {
		description = "Daily check-in"
	}

	dtStamp := fmt.Sprintf("%sT%02d%02d00",
		strings.ReplaceAll(utils.DayKey(stamp), "-", ""), stamp.Hour(), stamp.Minute())

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Challenge Radar//EN",
		"X-WR-CALNAME:" + c.Title,
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@challenge-radar", c.ID),
		"DTSTAMP:" + dtStamp,
		fmt.Sprintf("DTSTART:%sT%s00", start, begin),
		fmt.Sprintf("DTEND:%sT%s00", start, end),
		fmt.Sprintf("RRULE:FREQ=DAILY;COUNT=%d", c.TotalDays),
		"SUMMARY:" + c.Title,
		"DESCRIPTION:" + description,
		"BEGIN:VALARM",
		fmt.Sprintf("TRIGGER:-PT%dM", constants.CalendarAlarmMinutes),
		"ACTION:DISPLAY",
		fmt.Sprintf("DESCRIPTION:%s check-in", c.Title),
		"END:VALARM",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	return strings.Join(lines, "\r\n")
}

// Filename derives a safe file name from the challenge title: lowercase,
// runs of non-alphanumerics collapsed to single hyphens, leading and
// trailing hyphens trimmed, with a fallback when nothing survives.
func Filename(c models.Challenge) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(c.Title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "challenge"
	}
	return slug + ".ics"
}
