package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/punchcard/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current recording status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	tr, _ := openTracker()
	now := time.Now()

	if tr.IsRecording() {
		event := tr.LastEvent()
		fmt.Println("Recording:")
		if event.Description != "" {
			fmt.Printf("  Description: %s\n", event.Description)
		}
		fmt.Printf("  Since: %s\n", event.Date.Format("15:04"))
		fmt.Printf("  Elapsed: %s\n", timecalc.FormatClock(tr.Elapsed()))
	} else {
		fmt.Println("Paused.")
	}

	var todayTotal int64
	for _, day := range tr.ActivitiesByDay() {
		if timecalc.SameDay(day.Date, now) {
			todayTotal = day.TotalTime()
		}
	}
	fmt.Printf("Today: %s recorded.\n", timecalc.FormatDuration(todayTotal))
	return nil
}
