package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/punchcard/internal/timecalc"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0s"},
		{45_000, "45s"},
		{60_000, "1m"},
		{90_000, "1m"},
		{3_600_000, "1h 0m"},
		{3_661_000, "1h 1m"},
		{5_400_000, "1h 30m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.ms)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00"},
		{61_000, "00:01:01"},
		{3_661_000, "01:01:01"},
		{93_600_000, "26:00:00"},
	}
	for _, tt := range tests {
		got := timecalc.FormatClock(tt.ms)
		if got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestDayStripsTime(t *testing.T) {
	at := time.Date(2026, 2, 27, 15, 42, 7, 123, time.Local)
	day := timecalc.Day(at)
	want := time.Date(2026, 2, 27, 0, 0, 0, 0, time.Local)
	if !day.Equal(want) {
		t.Errorf("Day(%v) = %v, want %v", at, day, want)
	}
	if timecalc.DayKey(day) != "2026-02-27" {
		t.Errorf("DayKey = %q, want %q", timecalc.DayKey(day), "2026-02-27")
	}
}

func TestParseDayRoundTrip(t *testing.T) {
	day, err := timecalc.ParseDay("2026-02-27")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if timecalc.DayKey(day) != "2026-02-27" {
		t.Errorf("DayKey(ParseDay) = %q, want %q", timecalc.DayKey(day), "2026-02-27")
	}
	if _, err := timecalc.ParseDay("27.02.2026"); err == nil {
		t.Error("ParseDay accepted a non-ISO date")
	}
}

func TestMonthLabelIsZeroBased(t *testing.T) {
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2026, 12, 10, 0, 0, 0, 0, time.UTC)
	if got := timecalc.MonthLabel(jan); got != "0" {
		t.Errorf("MonthLabel(january) = %q, want %q", got, "0")
	}
	if got := timecalc.MonthLabel(dec); got != "11" {
		t.Errorf("MonthLabel(december) = %q, want %q", got, "11")
	}
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday (week 9).
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	monday, sunday := timecalc.WeekRange(fri)

	wantMonday := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	wantSunday := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)

	if !monday.Equal(wantMonday) {
		t.Errorf("WeekRange monday = %v, want %v", monday, wantMonday)
	}
	if !sunday.Equal(wantSunday) {
		t.Errorf("WeekRange sunday = %v, want %v", sunday, wantSunday)
	}
	if timecalc.ISOWeekLabel(fri) != "2026-W09" {
		t.Errorf("ISOWeekLabel = %q, want %q", timecalc.ISOWeekLabel(fri), "2026-W09")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 0, 0, 1, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if !timecalc.SameDay(a, b) {
		t.Error("SameDay(a, b) = false, want true")
	}
	if timecalc.SameDay(b, c) {
		t.Error("SameDay(b, c) = true, want false")
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := timecalc.NewID()
		if id == "" {
			t.Fatal("NewID returned empty string")
		}
		if seen[id] {
			t.Fatalf("NewID returned duplicate %q", id)
		}
		seen[id] = true
	}
}
