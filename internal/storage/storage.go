package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/punchcard/internal/model"
)

const (
	activitiesFile = "activities.json"
	lastEventFile  = "last_event.json"
)

// Store persists the activity snapshot and the last record event as
// human-readable JSON files under a base directory. Unparseable files are
// backed up and treated as absent so a damaged snapshot never blocks startup.
type Store struct {
	base string
}

// BaseDir returns the root data directory: $PUNCHCARD_HOME if set,
// otherwise ~/.punchcard.
func BaseDir() (string, error) {
	if dir := os.Getenv("PUNCHCARD_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".punchcard"), nil
}

// New creates a Store rooted at base, creating the directory if needed.
func New(base string) (*Store, error) {
	if err := os.MkdirAll(base, 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating data directory: %w", err)
	}
	return &Store{base: base}, nil
}

// Base returns the data directory the store writes to.
func (s *Store) Base() string {
	return s.base
}

// SaveActivities atomically writes the full activity snapshot.
func (s *Store) SaveActivities(activities []model.Activity) error {
	if activities == nil {
		activities = []model.Activity{}
	}
	data, err := json.MarshalIndent(activities, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling activities: %w", err)
	}
	return s.writeFile(activitiesFile, data)
}

// LoadActivities loads the persisted activity snapshot. A missing or corrupt
// file yields an empty list; corrupt files are backed up first.
func (s *Store) LoadActivities() ([]model.Activity, error) {
	path := filepath.Join(s.base, activitiesFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []model.Activity{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var activities []model.Activity
	if err := json.Unmarshal(data, &activities); err != nil {
		s.backupCorrupt(path)
		return []model.Activity{}, nil
	}
	if activities == nil {
		activities = []model.Activity{}
	}
	return activities, nil
}

// LoadCommands loads the persisted activities and wraps each one as a
// pass-through command for seeding the reducer.
func (s *Store) LoadCommands() ([]model.Command, error) {
	activities, err := s.LoadActivities()
	if err != nil {
		return nil, err
	}
	commands := make([]model.Command, 0, len(activities))
	for i := range activities {
		commands = append(commands, model.Command{
			Type:     model.CommandNoop,
			Activity: &activities[i],
			Date:     activities[i].Day,
		})
	}
	return commands, nil
}

// SaveLastEvent atomically writes the last record event.
func (s *Store) SaveLastEvent(event model.RecordEvent) error {
	data, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling event: %w", err)
	}
	return s.writeFile(lastEventFile, data)
}

// LoadLastEvent loads the persisted last event, or nil if none is stored.
// Corrupt files are backed up and treated as absent.
func (s *Store) LoadLastEvent() (*model.RecordEvent, error) {
	path := filepath.Join(s.base, lastEventFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var event model.RecordEvent
	if err := json.Unmarshal(data, &event); err != nil {
		s.backupCorrupt(path)
		return nil, nil
	}
	return &event, nil
}

// writeFile performs an atomic write: temp file then rename.
func (s *Store) writeFile(name string, data []byte) error {
	path := filepath.Join(s.base, name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// backupCorrupt moves an unparseable file aside so the evidence survives the
// fallback to an empty state.
func (s *Store) backupCorrupt(path string) {
	_ = os.Rename(path, path+".corrupt")
}
