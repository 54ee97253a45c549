package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openzx/proofline/internal/presentation/graph"
)

// showCmd renders the diagram at a proof step.
var showCmd = &cobra.Command{
	Use:   "show <proof-id>",
	Short: "Export the diagram at a proof step",
	Long:  `Loads a stored proof and outputs its diagram as a Mermaid graph or JSON. By default the latest step is shown.`,
	Args:  cobra.ExactArgs(1),
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

		step, _ := cmd.Flags().GetInt("step")
		if step == -1 {
			step = doc.NumSteps()
		}
		if step < 0 || step > doc.NumSteps() {
			fmt.Printf("Step %d out of range [0,%d]\n", step, doc.NumSteps())
			os.Exit(1)
		}

		g := doc.GraphAt(step)

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "mermaid":
			fmt.Print(graph.GenerateMermaid(g, nil))
		case "json":
			data, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				fmt.Printf("Error encoding graph: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
		default:
			fmt.Printf("Unknown format %q (want mermaid or json)\n", format)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Int("step", -1, "Proof step to show (0 = initial graph, default latest)")
	showCmd.Flags().String("format", "mermaid", "Output format: mermaid or json")
}
