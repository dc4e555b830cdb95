package cmd

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/deploy-checklist/internal/app"
	"github.com/atomicstack/deploy-checklist/internal/content"
	"github.com/atomicstack/deploy-checklist/internal/format/table"
	"github.com/spf13/cobra"
)

func NewValidateCmd(rt *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a checklist file and summarise its sections",
		Long: `Load a checklist, report every structural problem, and print a per-section
summary. Without a path the --content file (or the built-in checklist) is
checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rt.cfg.App.ContentPath
			if len(args) == 1 {
				path = args[0]
			}
			tree, source, err := app.LoadTree(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range summaryTable(tree) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "\nok: %s has %d section(s), %d step(s)\n", source, len(tree), tree.StepCount())
			return nil
		},
	}
}

func summaryTable(tree content.Tree) []string {
	rows := make([][]string, 0, len(tree))
	for _, section := range tree {
		commands, pitfalls := 0, 0
		for _, step := range section.Steps {
			commands += len(step.Commands())
			for _, b := range step.Blocks {
				if b.Kind() == content.KindPitfall {
					pitfalls++
				}
			}
		}
		rows = append(rows, []string{
			section.ID,
			section.Title,
			strconv.Itoa(len(section.Steps)),
			strconv.Itoa(commands),
			strconv.Itoa(pitfalls),
		})
	}
	return table.WithHeader(
		[]string{"ID", "TITLE", "STEPS", "COMMANDS", "PITFALLS"},
		rows,
		[]table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight, table.AlignRight},
	)
}
