package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/thermoprops"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of thermoprops",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "thermoprops version %s\n", thermoprops.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
