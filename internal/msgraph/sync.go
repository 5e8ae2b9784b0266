package msgraph

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/punchcard/internal/model"
	"github.com/Tiliavir/punchcard/internal/timecalc"
)

// Ledger is the slice of the tracker that calendar import needs.
type Ledger interface {
	AddActivity(model.Activity)
	Activities() []model.Activity
}

// SyncResult summarizes an import run.
type SyncResult struct {
	Imported int
	Skipped  int
	Errors   int
}

// ActivityID derives a stable activity id from a Graph event id, so
// re-running a sync never duplicates an already imported event.
func ActivityID(eventID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("msgraph:"+eventID)).String()
}

// shouldSkip reports whether a calendar event is out of scope for
// import: free/tentative slots, all-day events, cancelled meetings and
// private entries are all ignored.
func shouldSkip(ev CalendarEvent) bool {
	if ev.IsAllDay || ev.IsCancelled {
		return true
	}
	if ev.ShowAs != "busy" && ev.ShowAs != "oof" && ev.ShowAs != "workingElsewhere" {
		return true
	}
	if ev.Sensitivity == "private" || ev.Sensitivity == "confidential" {
		return true
	}
	return false
}

// MapEvent converts a calendar event into a completed activity.
func MapEvent(ev CalendarEvent, loc *time.Location) (model.Activity, error) {
	from, err := ev.Start.Time(loc)
	if err != nil {
		return model.Activity{}, err
	}
	to, err := ev.End.Time(loc)
	if err != nil {
		return model.Activity{}, err
	}
	total := to.Sub(from).Milliseconds()
	if total < 0 {
		return model.Activity{}, fmt.Errorf("event %q ends before it starts", ev.Subject)
	}

	description := strings.ToUpper(strings.TrimSpace(ev.Subject))
	if description == "" {
		description = "MEETING"
	}

	return model.Activity{
		UID:         ActivityID(ev.ID),
		Description: description,
		Day:         timecalc.Day(from),
		Month:       timecalc.MonthLabel(from),
		Interval: model.TimeInterval{
			From:      from,
			To:        &to,
			Completed: true,
			TotalTime: total,
		},
	}, nil
}

// SyncEvents feeds calendar events into the ledger as completed
// activities. Events already present (by derived id) are skipped.
// With dryRun set nothing is written; the result reflects what a real
// run would do.
func SyncEvents(ledger Ledger, events []CalendarEvent, loc *time.Location, dryRun bool) SyncResult {
	existing := make(map[string]bool)
	for _, a := range ledger.Activities() {
		existing[a.UID] = true
	}

	var res SyncResult
	for _, ev := range events {
		if shouldSkip(ev) {
			res.Skipped++
			continue
		}
		activity, err := MapEvent(ev, loc)
		if err != nil {
			res.Errors++
			continue
		}
		if existing[activity.UID] {
			res.Skipped++
			continue
		}
		if !dryRun {
			ledger.AddActivity(activity)
		}
		existing[activity.UID] = true
		res.Imported++
	}
	return res
}
