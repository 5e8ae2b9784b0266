package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/punchcard/internal/config"
	"github.com/Tiliavir/punchcard/internal/msgraph"
	"github.com/Tiliavir/punchcard/internal/timecalc"
)

var (
	outlookSyncFrom   string
	outlookSyncTo     string
	outlookSyncDate   string
	outlookSyncDryRun bool
	outlookSyncTZ     string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import Outlook calendar events as completed activities",
	Args:  cobra.NoArgs,
	RunE:  runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookSyncFrom, "from", "", "Start date (YYYY-MM-DD); required when --to is specified")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTo, "to", "", "End date (YYYY-MM-DD); defaults to today")
	outlookSyncCmd.Flags().StringVar(&outlookSyncDate, "date", "", "Sync a specific date (YYYY-MM-DD)")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print planned operations without writing")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (overrides the configured one)")
	outlookCmd.AddCommand(outlookSyncCmd)
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	now := time.Now()
	var from, to time.Time

	switch {
	case outlookSyncDate != "":
		d, err := timecalc.ParseDay(outlookSyncDate)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		from = timecalc.StartOfDay(d)
		to = timecalc.EndOfDay(d)

	case outlookSyncFrom != "" || outlookSyncTo != "":
		if outlookSyncTo != "" && outlookSyncFrom == "" {
			fmt.Fprintln(os.Stderr, "--from is required when --to is specified")
			os.Exit(1)
		}
		var err error
		from, err = timecalc.ParseDay(outlookSyncFrom)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if outlookSyncTo != "" {
			t, err := timecalc.ParseDay(outlookSyncTo)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			to = timecalc.EndOfDay(t)
		} else {
			to = timecalc.EndOfDay(now)
		}

	default:
		// Default: today.
		from = timecalc.StartOfDay(now)
		to = timecalc.EndOfDay(now)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	timezone := cfg.Outlook.Timezone
	if outlookSyncTZ != "" {
		timezone = outlookSyncTZ
	}
	loc := time.Local
	if timezone != "" {
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid timezone %q: %v\n", timezone, err)
			os.Exit(1)
		}
	} else {
		timezone = "UTC"
		loc = time.UTC
	}

	dryTag := ""
	if outlookSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Printf("Syncing Outlook events (%s → %s)%s...\n",
		timecalc.DayKey(from), timecalc.DayKey(to), dryTag)
	fmt.Println()

	ctx := context.Background()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	auth, err := msgraph.NewAuthenticator(cfg.Outlook.TenantID, cfg.Outlook.ClientID, log, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		os.Exit(1)
	}
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		os.Exit(1)
	}

	client := msgraph.NewClient(httpClient)

	events, err := client.GetCalendarView(ctx, from, to, timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch calendar events: %v\n", err)
		os.Exit(1)
	}

	tr, _ := openTracker()
	result := msgraph.SyncEvents(tr, events, loc, outlookSyncDryRun)

	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  %d imported\n", result.Imported)
	fmt.Printf("  %d skipped\n", result.Skipped)
	if result.Errors > 0 {
		fmt.Printf("  %d errors\n", result.Errors)
		os.Exit(2)
	}
	return nil
}
