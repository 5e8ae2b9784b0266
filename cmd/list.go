package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/punchcard/internal/model"
	"github.com/Tiliavir/punchcard/internal/timecalc"
)

var (
	listDay  string
	listWeek bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded activities grouped by day",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listDay, "day", "", "Show only one day (YYYY-MM-DD)")
	listCmd.Flags().BoolVar(&listWeek, "week", false, "Show only this week")
}

func runList(cmd *cobra.Command, args []string) error {
	if listDay != "" && listWeek {
		fmt.Fprintln(os.Stderr, "--day cannot be combined with --week")
		os.Exit(1)
	}

	tr, _ := openTracker()

	days := tr.ActivitiesByDay()
	switch {
	case listDay != "":
		wanted, err := timecalc.ParseDay(listDay)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		days = daysInRange(days, timecalc.StartOfDay(wanted), timecalc.EndOfDay(wanted))
	case listWeek:
		from, to := timecalc.WeekRange(time.Now())
		days = daysInRange(days, from, to)
	}

	printDays(days)
	return nil
}

// daysInRange keeps the day groups whose date falls within [from, to].
func daysInRange(days []model.DailyActivities, from, to time.Time) []model.DailyActivities {
	var out []model.DailyActivities
	for _, day := range days {
		if !day.Date.Before(from) && !day.Date.After(to) {
			out = append(out, day)
		}
	}
	return out
}

// printDays renders every day with per-description groups, group totals and
// the day total.
func printDays(days []model.DailyActivities) {
	if len(days) == 0 {
		fmt.Println("No activities found.")
		return
	}

	for _, day := range days {
		fmt.Printf("%s  (%s)\n",
			timecalc.DayKey(day.Date), timecalc.FormatDuration(day.TotalTime()))
		for _, description := range day.Descriptions {
			group := day.Activities[description]
			var groupTotal int64
			for _, a := range group {
				groupTotal += a.Interval.TotalTime
			}
			fmt.Printf("  %-30s %s  (%d)\n",
				description, timecalc.FormatDuration(groupTotal), len(group))
		}
	}
}
