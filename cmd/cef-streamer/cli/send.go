package cli

import (
	"errors"
	"fmt"
	"strings"

	streamer "github.com/juanfont/cef-streamer"
	"github.com/juanfont/cef-streamer/pkg/cef"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	eventSignature  string
	eventName       string
	eventLevel      string
	eventExtensions []string
)

func init() {
	for _, cmd := range []*cobra.Command{sendCmd, formatCmd} {
		cmd.Flags().StringVarP(&eventSignature, "signature", "s", "", "event class id")
		cmd.Flags().StringVarP(&eventName, "name", "n", "", "human readable event name")
		cmd.Flags().StringVarP(&eventLevel, "level", "l", "info", "severity, a level name or 0-10")
		cmd.Flags().StringArrayVarP(&eventExtensions, "ext", "e", nil, "extension as key=value, repeatable")
		_ = cmd.MarkFlagRequired("signature")
		_ = cmd.MarkFlagRequired("name")
		rootCmd.AddCommand(cmd)
	}
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one CEF event to syslog",
	Run: func(cmd *cobra.Command, args []string) {
		ev, level, err := eventFromFlags()
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid event")
		}

		logger := newLogger()
		defer logger.Close()

		message, err := logger.Log(ev, level)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not format event")
		}
		fmt.Println(message)
	},
}

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Print one CEF event without sending it",
	Run: func(cmd *cobra.Command, args []string) {
		ev, level, err := eventFromFlags()
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid event")
		}
		ev.Severity = int(level)

		cfg, err := getLoggerConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Could not read logger configuration")
		}

		formatter := cef.NewFormatter(cef.Defaults{
			Vendor:  cfg.Vendor,
			Product: cfg.Product,
			Version: cfg.Version,
		})
		message, err := formatter.Format(ev)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not format event")
		}
		fmt.Println(message)
	},
}

func eventFromFlags() (cef.Event, streamer.Level, error) {
	level, err := streamer.ParseLevel(eventLevel)
	if err != nil {
		return cef.Event{}, 0, err
	}

	ev := cef.Event{
		Signature: eventSignature,
		Name:      eventName,
	}
	for _, kv := range eventExtensions {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return cef.Event{}, 0, errors.New("extension must be key=value: " + kv)
		}
		ev.Extensions.Set(key, value)
	}

	return ev, level, nil
}
