package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// listCmd prints the IDs of all stored proofs.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored proofs",
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Error initializing proofline: %v\n", err)
			os.Exit(1)
		}

		ids, err := eng.Manager().List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing proofs: %v\n", err)
			os.Exit(1)
		}

		if len(ids) == 0 {
			fmt.Println("No proofs stored.")
			return
		}
		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
