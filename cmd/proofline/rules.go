package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openzx/proofline/internal/presentation/tui"
	"github.com/openzx/proofline/pkg/rewrite"
)

// rulesCmd prints the rewrite catalog.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rewrite rules",
	Long:  `Prints the rewrite catalog as a tree, with each rule's tooltip. A custom catalog file can be supplied with --catalog.`,
	Run: func(cmd *cobra.Command, args []string) {
		tree, err := loadCatalog(cmd)
		if err != nil {
			fmt.Printf("Error loading catalog: %v\n", err)
			os.Exit(1)
		}

		var md strings.Builder
		md.WriteString("# Rewrite rules\n\n")
		tree.Walk(func(path []string, a *rewrite.Action) {
			if len(path) > 0 {
				fmt.Fprintf(&md, "- **%s** (*%s*): %s\n", a.Name, strings.Join(path, " / "), a.Tooltip)
			} else {
				fmt.Fprintf(&md, "- **%s**: %s\n", a.Name, a.Tooltip)
			}
		})

		render := tui.NewRenderer()
		out, err := render(md.String())
		if err != nil {
			out = md.String()
		}
		fmt.Print(out)
	},
}

func loadCatalog(cmd *cobra.Command) (*rewrite.Tree, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		return rewrite.DefaultCatalog()
	}
	return rewrite.LoadCatalogFile(path, rewrite.DefaultRegistry())
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().String("catalog", "", "Path to a YAML catalog file (default: built-in catalog)")
}
