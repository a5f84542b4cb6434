// Init command for the saptrace CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initSeed bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize saptrace storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		if err := ensureConfigDir(configDir); err != nil {
			return err
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if initSeed {
			if err := store.SeedDemoProgram(cmd.Context()); err != nil {
				return fmt.Errorf("seed demo program: %w", err)
			}
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		fmt.Println("saptrace initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		if initSeed {
			fmt.Println("  seeded demo program:", "DEMO")
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initSeed, "seed", false, "seed a demo program for exploration")
}
