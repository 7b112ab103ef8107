package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	streamer "github.com/juanfont/cef-streamer"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Watch a JSON lines events file and forward new events to syslog",
	Aliases: []string{"w"},
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := getWatchConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid configuration")
		}

		logger := newLogger()
		defer logger.Close()

		app, err := streamer.NewEventStreamer(cfg, logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not create streamer")
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = app.Watch(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not watch for changes")
		}
	},
}
