package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/punchcard/internal/timecalc"
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause recording, completing the current activity",
	Args:  cobra.NoArgs,
	RunE:  runPause,
}

func runPause(cmd *cobra.Command, args []string) error {
	tr, _ := openTracker()

	if !tr.Pause() {
		fmt.Fprintln(os.Stderr, "No recording in progress.")
		os.Exit(1)
	}

	// The pairing just appended the completed activity to the collection.
	activities := tr.Activities()
	if len(activities) == 0 {
		fmt.Println("Paused.")
		return nil
	}
	last := activities[len(activities)-1]
	fmt.Printf("Paused. Recorded %q for %s\n",
		last.Description, timecalc.FormatDuration(last.Interval.TotalTime))
	return nil
}
