// Root command for the saptrace CLI.
package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/logging"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/paths"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/saptrace"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagProgram   string
	flagJSON      bool
	flagVerbose   bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

// logger is initialized by PersistentPreRunE.
var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:     "saptrace",
	Short:   "saptrace tracks test traceability and coverage for SAP transformation programs",
	Version: saptrace.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configDataDir = cfg.GetString(cfgKeyDataDir)

		logger, err = logging.New(logging.Options{Verbose: flagVerbose, JSON: flagJSON})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.saptrace-db)")
	rootCmd.PersistentFlags().StringVar(&flagProgram, "program", "", "transformation program ID")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(casesCmd)
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > SAPTRACE_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > SAPTRACE_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
