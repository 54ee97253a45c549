package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openzx/proofline/internal/presentation/tui"
)

// historyCmd lists the rewrite steps of a stored proof.
var historyCmd = &cobra.Command{
	Use:   "history <proof-id>",
	Short: "List the rewrite steps of a proof",
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Error initializing proofline: %v\n", err)
			os.Exit(1)
		}

		doc, err := eng.Manager().Load(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error loading proof: %v\n", err)
			os.Exit(1)
		}

		var md strings.Builder
		fmt.Fprintf(&md, "# Proof %s\n\n", args[0])
		fmt.Fprintf(&md, "| Step | Name | Rule | Vertices |\n|---|---|---|---|\n")
		fmt.Fprintf(&md, "| 0 | initial graph | | %d |\n", doc.GraphAt(0).NumVertices())
		for i, step := range doc.Steps() {
			fmt.Fprintf(&md, "| %d | %s | %s | %d |\n", i+1, step.DisplayName, step.Rule, step.Graph.NumVertices())
		}

		render := tui.NewRenderer()
		out, err := render(md.String())
		if err != nil {
			// Fall back to raw markdown on rendering errors.
			out = md.String()
		}
		fmt.Print(out)
	},
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
