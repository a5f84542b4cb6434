// Version command for the saptrace CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/saptrace"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the saptrace version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("saptrace", saptrace.Version)
	},
}
