package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xinjiayu/rxlite/internal/playground"
)

var runCmd = &cobra.Command{
	Use:   "run <chapter|example>...",
	Short: "Run examples by chapter or by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	registry := playground.Default()
	printer := playground.NewPrinter(cmd.OutOrStdout(), viper.GetBool(keyColor))

	for _, target := range args {
		log.Debug().Str("target", target).Msg("running")
		if err := registry.Run(target, printer); err != nil {
			return err
		}
	}
	return nil
}
