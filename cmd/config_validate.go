package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/VadimTolstov/rococo-sub000/internal/config"
)

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		isGateway, _ := cmd.Flags().GetBool("gateway")

		var err error
		if isGateway {
			_, err = config.LoadGateway(cfgFile)
		} else {
			_, err = config.Load(cfgFile)
		}
		if err != nil {
			log.Fatal().Err(err).Msg("Configuration is invalid.")
			return err
		}
		log.Info().Msg("Configuration is valid.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)

	configValidateCmd.Flags().Bool("gateway", false, "Validate as a gateway configuration")
}
