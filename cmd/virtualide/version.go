package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/virtualide"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of virtualide",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "virtualide version %s\n", rootVersion())
	},
}

func rootVersion() string {
	return strings.TrimSpace(virtualide.Version)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
