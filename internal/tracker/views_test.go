package tracker

import (
	"testing"
	"time"

	"github.com/Tiliavir/punchcard/internal/model"
)

func viewActivity(id, description string, day time.Time, ms int64) model.Activity {
	end := day.Add(time.Duration(ms) * time.Millisecond)
	return model.Activity{
		UID:         id,
		Description: description,
		Day:         day,
		Interval:    model.TimeInterval{From: day, To: &end, Completed: true, TotalTime: ms},
	}
}

func TestDistinctDescriptionsFirstSeenOrder(t *testing.T) {
	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.Local)
	got := distinctDescriptions([]model.Activity{
		viewActivity("1", "WRITE", day, 1000),
		viewActivity("2", "READ", day, 1000),
		viewActivity("3", "WRITE", day, 1000),
		viewActivity("4", "REVIEW", day, 1000),
		viewActivity("5", "READ", day, 1000),
	})
	want := []string{"WRITE", "READ", "REVIEW"}
	if len(got) != len(want) {
		t.Fatalf("descriptions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descriptions = %v, want %v", got, want)
		}
	}
}

func TestGroupByDayOrderAndGrouping(t *testing.T) {
	day1 := time.Date(2026, 2, 26, 0, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 2, 27, 0, 0, 0, 0, time.Local)

	// day2 activities come first in insertion order, but day1 must sort first.
	days := groupByDay([]model.Activity{
		viewActivity("1", "WRITE", day2, 1000),
		viewActivity("2", "READ", day2, 2000),
		viewActivity("3", "WRITE", day2, 3000),
		viewActivity("4", "WRITE", day1, 4000),
	})

	if len(days) != 2 {
		t.Fatalf("groups = %d, want 2", len(days))
	}
	if !days[0].Date.Equal(day1) || !days[1].Date.Equal(day2) {
		t.Errorf("day order = [%v %v], want ascending", days[0].Date, days[1].Date)
	}

	d2 := days[1]
	if len(d2.Descriptions) != 2 || d2.Descriptions[0] != "WRITE" || d2.Descriptions[1] != "READ" {
		t.Errorf("day2 descriptions = %v, want [WRITE READ]", d2.Descriptions)
	}
	writes := d2.Activities["WRITE"]
	if len(writes) != 2 || writes[0].UID != "1" || writes[1].UID != "3" {
		t.Errorf("WRITE group = %v, want insertion order [1 3]", writes)
	}
	if d2.TotalTime() != 6000 {
		t.Errorf("day2 TotalTime = %d, want 6000", d2.TotalTime())
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	if got := groupByDay(nil); len(got) != 0 {
		t.Errorf("groupByDay(nil) = %v, want empty", got)
	}
}
