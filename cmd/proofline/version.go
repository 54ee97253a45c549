package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openzx/proofline"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of proofline",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("proofline version %s\n", strings.TrimSpace(proofline.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
