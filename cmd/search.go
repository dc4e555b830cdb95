package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/deploy-checklist/internal/app"
	"github.com/atomicstack/deploy-checklist/internal/content"
	"github.com/atomicstack/deploy-checklist/internal/filter"
	"github.com/spf13/cobra"
)

func NewSearchCmd(rt *cliState) *cobra.Command {
	var showCommands bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print the sections and steps matching a query",
		Long: `Filter the checklist the same way the interactive view does and print the
resulting outline.

Examples:
  deploy-checklist search nginx
  deploy-checklist search "unattended upgrades" --commands
  deploy-checklist search ssl --content ./checklist.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _, err := app.LoadTree(rt.cfg.App.ContentPath)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			filtered := filter.Filter(tree, query)
			if len(filtered) == 0 {
				msg := fmt.Sprintf("No sections match %q", query)
				if suggestion, ok := content.Suggest(tree, query); ok {
					msg += fmt.Sprintf(" (closest section: %s)", suggestion)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
				return errNoMatches
			}
			writeOutline(cmd.OutOrStdout(), filtered, showCommands)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showCommands, "commands", false, "include the commands of each step")

	return cmd
}

func writeOutline(w io.Writer, tree content.Tree, showCommands bool) {
	for _, section := range tree {
		fmt.Fprintf(w, "%s [%s]\n", section.Title, section.ID)
		if len(section.Steps) == 0 {
			fmt.Fprintln(w, "  (no matching steps)")
			continue
		}
		for _, step := range section.Steps {
			fmt.Fprintf(w, "  - %s [%s]\n", step.Title, step.ID)
			if !showCommands {
				continue
			}
			for _, line := range step.Commands() {
				fmt.Fprintf(w, "      $ %s\n", line)
			}
		}
	}
	fmt.Fprintf(w, "\n%d section(s), %d step(s)\n", len(tree), tree.StepCount())
}
