package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "RXPLAY"

const (
	keyColor    = "color"
	keyLogLevel = "log-level"
)

var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "rxplay",
	Short: "Replay the rxlite operator playgrounds",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	addRootFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(searchCmd)

	log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	cobra.OnInitialize(initConfig)
}

func addRootFlags(flags *pflag.FlagSet) {
	flags.Bool(keyColor, true, "colorize output")
	flags.String(keyLogLevel, "info", "log level (debug, info, warn, error)")
	bindFlags(flags)
}

func bindFlags(flags *pflag.FlagSet) {
	if err := viper.BindPFlags(flags); err != nil {
		log.Fatal().Err(err).Msg("could not bind flags")
	}
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setupLogger() error {
	level, err := zerolog.ParseLevel(viper.GetString(keyLogLevel))
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", viper.GetString(keyLogLevel))
	}
	log = log.Level(level)
	return nil
}
