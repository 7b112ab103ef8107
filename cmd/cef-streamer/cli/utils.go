package cli

import (
	"errors"

	streamer "github.com/juanfont/cef-streamer"
	"github.com/juanfont/cef-streamer/pkg/syslog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func getLoggerConfig() (streamer.Config, error) {
	version := viper.GetString("cef.version")
	if versionFile := viper.GetString("cef.version_file"); versionFile != "" {
		v, err := streamer.ReadVersionManifest(versionFile)
		if err != nil {
			return streamer.Config{}, err
		}
		version = v
	}

	cfg := streamer.Config{
		Vendor:  viper.GetString("cef.vendor"),
		Product: viper.GetString("cef.product"),
		Version: version,
		Syslog: syslog.Config{
			Tag:      viper.GetString("syslog.tag"),
			Facility: viper.GetString("syslog.facility"),
			Address:  viper.GetString("syslog.address"),
			Port:     viper.GetInt("syslog.port"),
			Format:   syslog.Format(viper.GetString("syslog.format")),
		},
	}

	return cfg, nil
}

func getWatchConfig() (streamer.WatchConfig, error) {
	cfg := streamer.WatchConfig{
		EventsPath: viper.GetString("sources.events_path"),
		DBPath:     viper.GetString("db_path"),
	}

	if cfg.EventsPath == "" {
		return cfg, errors.New("Fatal config error: set sources.events_path in config file")
	}
	if cfg.DBPath == "" {
		return cfg, errors.New("Fatal config error: set db_path in config file")
	}

	return cfg, nil
}

func newLogger() *streamer.Logger {
	cfg, err := getLoggerConfig()
	if err != nil {
		log.Fatal().Caller().Err(err).Msg("Could not read logger configuration")
	}

	logger, err := streamer.NewLogger(cfg)
	if err != nil {
		log.Fatal().Caller().Err(err).Msg("Could not create logger")
	}

	return logger
}
