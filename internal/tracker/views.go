package tracker

import (
	"sort"

	"github.com/Tiliavir/punchcard/internal/model"
	"github.com/Tiliavir/punchcard/internal/timecalc"
)

// distinctDescriptions returns the unique descriptions across the current
// activities, in first-seen order.
func distinctDescriptions(activities []model.Activity) []string {
	seen := make(map[string]bool, len(activities))
	out := []string{}
	for _, a := range activities {
		if seen[a.Description] {
			continue
		}
		seen[a.Description] = true
		out = append(out, a.Description)
	}
	return out
}

// groupByDay groups activities first by calendar day, then by description
// within each day, preserving the insertion order of activities within a
// group. Days are returned ascending; canonical YYYY-MM-DD keys sort
// chronologically.
func groupByDay(activities []model.Activity) []model.DailyActivities {
	byKey := make(map[string]*model.DailyActivities)
	var keys []string

	for _, a := range activities {
		key := timecalc.DayKey(a.Day)
		day, ok := byKey[key]
		if !ok {
			day = &model.DailyActivities{
				Date:       a.Day,
				Activities: make(map[string][]model.Activity),
			}
			byKey[key] = day
			keys = append(keys, key)
		}
		if _, ok := day.Activities[a.Description]; !ok {
			day.Descriptions = append(day.Descriptions, a.Description)
		}
		day.Activities[a.Description] = append(day.Activities[a.Description], a)
	}

	sort.Strings(keys)
	out := make([]model.DailyActivities, 0, len(keys))
	for _, key := range keys {
		out = append(out, *byKey[key])
	}
	return out
}
