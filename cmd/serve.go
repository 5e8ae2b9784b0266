package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/punchcard/internal/config"
	"github.com/Tiliavir/punchcard/internal/storage"
	"github.com/Tiliavir/punchcard/internal/tracker"
	"github.com/Tiliavir/punchcard/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides the configured one)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
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

	tr := tracker.New(store, tracker.WithLogger(log))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Ticker streams for elapsed time and the blink cue.
	go tr.Run(ctx)

	// Pick up writes by concurrent CLI invocations or hand edits.
	changes, err := store.Watch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("file watching unavailable, external edits need a restart")
	} else {
		go func() {
			for range changes {
				if err := tr.Reload(); err != nil {
					log.Warn().Err(err).Msg("reload after external change failed")
				} else {
					log.Info().Msg("reloaded activities after external change")
				}
			}
		}()
	}

	server := web.NewServer(cfg.Server, tr, log)
	if err := server.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}
