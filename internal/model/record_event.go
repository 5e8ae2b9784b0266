package model

import "time"

// Status is the recording state carried by a RecordEvent.
type Status string

const (
	StatusRecording Status = "recording"
	StatusPaused    Status = "paused"
)

// RecordEvent represents a single user-triggered state change: the new
// status, the moment it happened and the description active at that moment.
// Events are immutable once emitted.
type RecordEvent struct {
	Status      Status    `json:"status"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
}

// DefaultEvent returns the paused event used when no last event is persisted.
func DefaultEvent(now time.Time) RecordEvent {
	return RecordEvent{Status: StatusPaused, Date: now, Description: ""}
}
