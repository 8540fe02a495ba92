package commands

import (
	"fmt"
	"os"

	"github.com/battlesnakeio/gridsnake/cmd/gridsnake/commands/server"
	"github.com/battlesnakeio/gridsnake/config"
	"github.com/battlesnakeio/gridsnake/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "gridsnake",
	Short:   "gridsnake is a battlesnake that plays from a dense board model",
	Version: version.Version,
	PersistentPreRun: func(c *cobra.Command, args []string) {
		if err := setupLogging(config.LogLevel, config.LogFormat); err != nil {
			log.WithError(err).Warn("invalid logging configuration, using defaults")
		}
	},
	Run: func(c *cobra.Command, args []string) {
		server.RootCmd.Run(c, args)
	},
}

var (
	apiAddr string
)

// Execute runs the root command
func Execute() {

	rootCmd.PersistentFlags().StringVar(&apiAddr, "api-addr", "http://localhost:8080", "address of the snake server")
	rootCmd.Flags().AddFlagSet(server.RootCmd.Flags())

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(server.RootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
