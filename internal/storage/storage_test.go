package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/punchcard/internal/model"
	"github.com/Tiliavir/punchcard/internal/storage"
)

func testActivity(id, description string, day time.Time) model.Activity {
	to := day.Add(30 * time.Minute)
	return model.Activity{
		UID:         id,
		Description: description,
		Day:         day,
		Month:       "1",
		Interval: model.TimeInterval{
			From:      day,
			To:        &to,
			Completed: true,
			TotalTime: int64(30 * time.Minute / time.Millisecond),
		},
	}
}

func TestLoadActivitiesMissing(t *testing.T) {
	s, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	activities, err := s.LoadActivities()
	if err != nil {
		t.Fatalf("LoadActivities on missing file: %v", err)
	}
	if len(activities) != 0 {
		t.Errorf("LoadActivities = %d entries, want 0", len(activities))
	}
}

func TestSaveAndLoadActivitiesRoundTrip(t *testing.T) {
	s, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	original := []model.Activity{
		testActivity("id-1", "WRITE", day),
		testActivity("id-2", "READ", day),
	}
	if err := s.SaveActivities(original); err != nil {
		t.Fatalf("SaveActivities: %v", err)
	}

	loaded, err := s.LoadActivities()
	if err != nil {
		t.Fatalf("LoadActivities: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("LoadActivities = %d entries, want 2", len(loaded))
	}
	for i := range original {
		if loaded[i].UID != original[i].UID {
			t.Errorf("activity %d UID = %q, want %q", i, loaded[i].UID, original[i].UID)
		}
		if !loaded[i].Day.Equal(original[i].Day) {
			t.Errorf("activity %d Day = %v, want %v", i, loaded[i].Day, original[i].Day)
		}
		if !loaded[i].Interval.From.Equal(original[i].Interval.From) {
			t.Errorf("activity %d From = %v, want %v", i, loaded[i].Interval.From, original[i].Interval.From)
		}
		if loaded[i].Interval.To == nil || !loaded[i].Interval.To.Equal(*original[i].Interval.To) {
			t.Errorf("activity %d To = %v, want %v", i, loaded[i].Interval.To, original[i].Interval.To)
		}
		if !loaded[i].Interval.Completed {
			t.Errorf("activity %d not completed after round trip", i)
		}
	}

	// A second save-then-load of the loaded list reproduces it.
	if err := s.SaveActivities(loaded); err != nil {
		t.Fatalf("SaveActivities (second): %v", err)
	}
	again, err := s.LoadActivities()
	if err != nil {
		t.Fatalf("LoadActivities (second): %v", err)
	}
	if len(again) != len(loaded) {
		t.Fatalf("second round trip = %d entries, want %d", len(again), len(loaded))
	}
}

func TestLoadActivitiesCorruptFallsBackEmpty(t *testing.T) {
	base := t.TempDir()
	s, err := storage.New(base)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path := filepath.Join(base, "activities.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	activities, err := s.LoadActivities()
	if err != nil {
		t.Fatalf("LoadActivities on corrupt file: %v", err)
	}
	if len(activities) != 0 {
		t.Errorf("LoadActivities = %d entries, want 0", len(activities))
	}

	// The corrupt file must be preserved as evidence.
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("corrupt backup missing: %v", err)
	}
}

func TestLoadCommandsWrapsActivities(t *testing.T) {
	s, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	if err := s.SaveActivities([]model.Activity{testActivity("id-1", "WRITE", day)}); err != nil {
		t.Fatalf("SaveActivities: %v", err)
	}

	commands, err := s.LoadCommands()
	if err != nil {
		t.Fatalf("LoadCommands: %v", err)
	}
	if len(commands) != 1 {
		t.Fatalf("LoadCommands = %d commands, want 1", len(commands))
	}
	if commands[0].Type != model.CommandNoop {
		t.Errorf("command type = %q, want %q", commands[0].Type, model.CommandNoop)
	}
	if commands[0].Activity == nil || commands[0].Activity.UID != "id-1" {
		t.Errorf("command activity = %+v, want UID id-1", commands[0].Activity)
	}
	if !commands[0].Date.Equal(day) {
		t.Errorf("command date = %v, want %v", commands[0].Date, day)
	}
}

func TestLastEventRoundTrip(t *testing.T) {
	s, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// No event stored yet.
	event, err := s.LoadLastEvent()
	if err != nil {
		t.Fatalf("LoadLastEvent on missing file: %v", err)
	}
	if event != nil {
		t.Fatalf("LoadLastEvent = %+v, want nil", event)
	}

	at := time.Date(2026, 2, 27, 9, 30, 0, 0, time.UTC)
	saved := model.RecordEvent{Status: model.StatusRecording, Date: at, Description: "write"}
	if err := s.SaveLastEvent(saved); err != nil {
		t.Fatalf("SaveLastEvent: %v", err)
	}

	event, err = s.LoadLastEvent()
	if err != nil {
		t.Fatalf("LoadLastEvent: %v", err)
	}
	if event == nil {
		t.Fatal("LoadLastEvent = nil, want event")
	}
	if event.Status != model.StatusRecording {
		t.Errorf("Status = %q, want %q", event.Status, model.StatusRecording)
	}
	if !event.Date.Equal(at) {
		t.Errorf("Date = %v, want %v", event.Date, at)
	}
	if event.Description != "write" {
		t.Errorf("Description = %q, want %q", event.Description, "write")
	}
}

func TestLoadLastEventCorruptTreatedAsAbsent(t *testing.T) {
	base := t.TempDir()
	s, err := storage.New(base)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	path := filepath.Join(base, "last_event.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	event, err := s.LoadLastEvent()
	if err != nil {
		t.Fatalf("LoadLastEvent on corrupt file: %v", err)
	}
	if event != nil {
		t.Errorf("LoadLastEvent = %+v, want nil", event)
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("corrupt backup missing: %v", err)
	}
}
