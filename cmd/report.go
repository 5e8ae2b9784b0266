package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/punchcard/internal/model"
	"github.com/Tiliavir/punchcard/internal/timecalc"
)

var (
	reportWeek   bool
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show per-description time totals",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportWeek, "week", false, "Report only this week")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

func runReport(cmd *cobra.Command, args []string) error {
	tr, _ := openTracker()

	activities := tr.Activities()
	var label string
	if reportWeek {
		now := time.Now()
		from, to := timecalc.WeekRange(now)
		activities = activitiesInRange(activities, from, to)
		label = timecalc.ISOWeekLabel(now)
	}

	totals, order := aggregateByDescription(activities)

	var grandTotal int64
	for _, ms := range totals {
		grandTotal += ms
	}

	switch reportFormat {
	case "csv":
		fmt.Println("description,duration_minutes")
		for _, d := range order {
			fmt.Printf("%s,%d\n", csvEscape(d), totals[d]/60000)
		}
	case "json":
		fmt.Println("{")
		if label != "" {
			fmt.Printf("  \"week\": %q,\n", label)
		}
		fmt.Println("  \"descriptions\": [")
		for i, d := range order {
			comma := ","
			if i == len(order)-1 {
				comma = ""
			}
			fmt.Printf("    {\"description\": %q, \"duration_ms\": %d}%s\n",
				d, totals[d], comma)
		}
		fmt.Println("  ],")
		fmt.Printf("  \"total_ms\": %d\n", grandTotal)
		fmt.Println("}")
	default: // md
		if label != "" {
			fmt.Printf("Week %s\n", label)
		}
		fmt.Println("--------------------------------")
		for _, d := range order {
			fmt.Printf("%-20s%s\n", d, timecalc.FormatDuration(totals[d]))
		}
		fmt.Println("--------------------------------")
		fmt.Printf("%-20s%s\n", "Total", timecalc.FormatDuration(grandTotal))
	}

	return nil
}

// activitiesInRange keeps the activities whose interval starts within
// [from, to].
func activitiesInRange(activities []model.Activity, from, to time.Time) []model.Activity {
	var out []model.Activity
	for _, a := range activities {
		if !a.Interval.From.Before(from) && !a.Interval.From.After(to) {
			out = append(out, a)
		}
	}
	return out
}

// aggregateByDescription sums activity durations per description, returning
// the totals and the descriptions in sorted order.
func aggregateByDescription(activities []model.Activity) (map[string]int64, []string) {
	totals := map[string]int64{}
	var order []string
	for _, a := range activities {
		if _, seen := totals[a.Description]; !seen {
			order = append(order, a.Description)
		}
		totals[a.Description] += a.Interval.TotalTime
	}
	sort.Strings(order)
	return totals, order
}
