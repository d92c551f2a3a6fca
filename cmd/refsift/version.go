package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the refsift version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if humanOutput {
			fmt.Printf("refsift %s\n", Version)
		} else {
			outputJSON(map[string]string{"version": Version})
		}
	},
}
