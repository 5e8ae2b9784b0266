package model

import "time"

// TimeInterval describes the span between two record events.
// TotalTime is in milliseconds. Completed is false only for an in-progress
// interval, which is never persisted as an Activity.
type TimeInterval struct {
	From      time.Time  `json:"from"`
	To        *time.Time `json:"to,omitempty"`
	Completed bool       `json:"completed"`
	TotalTime int64      `json:"totalTime"`
}

// Activity is a completed, persisted unit of tracked time. Description is
// stored upper-cased; Day is the local calendar day of Interval.From with
// the time stripped. Every persisted Activity has Interval.Completed == true.
type Activity struct {
	UID         string       `json:"uid"`
	Description string       `json:"description"`
	Day         time.Time    `json:"day"`
	Month       string       `json:"month"`
	Interval    TimeInterval `json:"interval"`
}

// DailyActivities groups one day's activities by description. Descriptions
// preserves the first-seen order of the map keys so renderings stay stable.
// It is a derived view, recomputed on every change, never persisted.
type DailyActivities struct {
	Date         time.Time             `json:"date"`
	Activities   map[string][]Activity `json:"activities"`
	Descriptions []string              `json:"descriptions"`
}

// TotalTime sums the durations of all activities in the day, in milliseconds.
func (d DailyActivities) TotalTime() int64 {
	var sum int64
	for _, group := range d.Activities {
		for _, a := range group {
			sum += a.Interval.TotalTime
		}
	}
	return sum
}

// EmptyActivity is the placeholder substituted for a command that carries no
// activity during reduction.
func EmptyActivity() Activity {
	return Activity{
		Interval: TimeInterval{From: time.Now(), Completed: false},
	}
}
