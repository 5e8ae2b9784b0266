package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/punchcard/internal/model"
	"github.com/Tiliavir/punchcard/internal/timecalc"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all activities to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json")
}

func runExport(cmd *cobra.Command, args []string) error {
	tr, _ := openTracker()
	activities := tr.Activities()

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(activities, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	default: // csv
		printCSV(activities)
	}

	return nil
}

func printCSV(activities []model.Activity) {
	fmt.Println("day,description,from,to,duration_minutes")
	for _, a := range activities {
		fromStr := a.Interval.From.Format(time.RFC3339)
		toStr := ""
		if a.Interval.To != nil {
			toStr = a.Interval.To.Format(time.RFC3339)
		}
		fmt.Printf("%s,%s,%s,%s,%d\n",
			csvEscape(timecalc.DayKey(a.Day)),
			csvEscape(a.Description),
			csvEscape(fromStr),
			csvEscape(toStr),
			a.Interval.TotalTime/60000,
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
