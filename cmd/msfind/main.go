package main

import (
	"fmt"
	"os"

	"github.com/grailbio/base/log"
	"github.com/spf13/cobra"

	"github.com/mr-c/macsyfinder/config"
)

var (
	configPath string
	logLevel   string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "msfind",
	Short: "Detect macromolecular systems in a replicon from profile hits",
	Long: `msfind runs the colocalization clusterizer, promotion pass,
combination matcher, scorer, and best-system selector over a profile-hit
stream and a catalog of system models, and reports the systems found.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default ~/.msfind/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug|info|warn|error)")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(indexCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error.Printf("%v", err)
		os.Exit(1)
	}
}
