package timecalc

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID creates a globally unique activity ID.
func NewID() string {
	return uuid.NewString()
}

// Day strips the time of day from t, keeping the local calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey returns the canonical sortable key for a calendar day.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDay parses a YYYY-MM-DD string as a local calendar day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// MonthLabel returns the zero-based month of t as text, the form stored in
// activity snapshots.
func MonthLabel(t time.Time) string {
	return strconv.Itoa(int(t.Month()) - 1)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return Day(t)
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := Day(t.AddDate(0, 0, -(wd - 1)))
	sunday := EndOfDay(monday.AddDate(0, 0, 6))
	return monday, sunday
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// FormatDuration formats milliseconds as a human-readable string like
// "1h 40m" or "45m" or "30s".
func FormatDuration(ms int64) string {
	seconds := ms / 1000
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatClock formats milliseconds as HH:MM:SS. Hours do not wrap, so a
// 26 hour interval renders as "26:00:00".
func FormatClock(ms int64) string {
	seconds := ms / 1000
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
