package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string = ""

func init() {
	if len(os.Args) > 1 &&
		(os.Args[1] == "version") {
		return
	}

	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().
		StringVarP(&cfgFile, "config", "c", "", "config file (default is /etc/cef-streamer/config.yaml)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = os.Getenv("STREAMER_CONFIG")
	}

	if err := loadViperConfig(cfgFile); err != nil {
		log.Fatal().Caller().Err(err).Msgf("Error loading config file %s", cfgFile)
	}

	logLevelStr := viper.GetString("log_level")
	logLevel, err := zerolog.ParseLevel(logLevelStr)
	if err != nil || logLevelStr == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)
}

var rootCmd = &cobra.Command{
	Use:   "cef-streamer",
	Short: "cef-streamer formats security events as CEF and forwards them to syslog",
	Long: `
cef-streamer formats security events as ArcSight Common Event Format
records and forwards them to a syslog collector over UDP.

https://github.com/juanfont/cef-streamer`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadViperConfig reads path, or config.yaml from the default locations.
// Every key can also be set with a STREAMER_ environment variable, so a
// missing config file is not fatal.
func loadViperConfig(path string) error {
	viper.SetEnvPrefix("streamer")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("log_level", "info")
	viper.SetDefault("db_path", "cef-streamer.db")
	viper.SetDefault("syslog.facility", "user")
	viper.SetDefault("syslog.address", "127.0.0.1")
	viper.SetDefault("syslog.port", 514)
	viper.SetDefault("syslog.format", "rfc3164")
	viper.SetDefault("http.listen_addr", "127.0.0.1:8080")

	if path != "" {
		viper.SetConfigFile(path)
		return viper.ReadInConfig()
	}

	viper.SetConfigName("config")
	viper.AddConfigPath("/etc/cef-streamer")
	viper.AddConfigPath("$HOME/.cef-streamer")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Warn().Msg("No config file found, using defaults and environment")
			return nil
		}
		return err
	}

	return nil
}
