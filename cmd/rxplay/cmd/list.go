package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xinjiayu/rxlite/internal/playground"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List chapters and examples",
	Run:   list,
}

func list(cmd *cobra.Command, args []string) {
	registry := playground.Default()
	out := cmd.OutOrStdout()
	for _, chapter := range registry.Chapters() {
		fmt.Fprintln(out, chapter)
		for _, e := range registry.Chapter(chapter) {
			fmt.Fprintf(out, "  %-28s %s\n", e.Name, e.Title)
		}
	}
}
