// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dalzilio-labs/qmddsift/internal/config"
)

var (
	configPath string
	logLevel   string
	verbose    bool

	cfg *config.Config
	log zerolog.Logger
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "qmddsift",
	Short: "Build and reorder quantum-circuit functionality diagrams",
	Long: `qmddsift builds the functional matrix decision diagram of a quantum
circuit and applies dynamic variable reordering (sifting, linear
transformations, or a mix of both) to shrink it.`,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		if logLevel != "" {
			level = logLevel
		}
		zlevel, err := zerolog.ParseLevel(level)
		if err != nil {
			return err
		}
		zerolog.SetGlobalLevel(zlevel)

		var writer = os.Stderr
		if cfg.Log.Format == "console" {
			log = zerolog.New(zerolog.ConsoleWriter{Out: writer}).With().Timestamp().Logger()
		} else {
			log = zerolog.New(writer).With().Timestamp().Logger()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a qmddsift config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Shorthand for --log-level=debug")
}
