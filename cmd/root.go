package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/punchcard/internal/config"
	"github.com/Tiliavir/punchcard/internal/storage"
	"github.com/Tiliavir/punchcard/internal/tracker"
)

var rootCmd = &cobra.Command{
	Use:   "punchcard",
	Short: "punchcard – a personal activity tracker",
	Long: `punchcard records activities as start/pause events paired into
timed activities. All data is stored as human-readable JSON files in
~/.punchcard/. The serve command exposes the same tracker as a local
web API.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(outlookCmd)
}

// openTracker loads the configuration, opens the activity store and seeds
// a tracker from it. Storage problems end the process with exit code 2.
func openTracker(opts ...tracker.Option) (*tracker.Tracker, *storage.Store) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	store, err := storage.New(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return tracker.New(store, opts...), store
}
