package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/deploy-checklist/internal/app"
	"github.com/atomicstack/deploy-checklist/internal/config"
	"github.com/atomicstack/deploy-checklist/internal/logging"
	"github.com/spf13/cobra"
)

// errNoMatches reports a search that matched nothing; the message has
// already been printed.
var errNoMatches = errors.New("no matches")

// cliState carries the configuration resolved before a command runs.
type cliState struct {
	cfg  config.Config
	argv []string
}

// NewRootCmd builds the command tree. argv is recorded in the startup trace.
func NewRootCmd(argv []string) *cobra.Command {
	rt := &cliState{argv: argv}
	root := &cobra.Command{
		Use:   "deploy-checklist",
		Short: "Interactive server deployment checklist",
		Long: `deploy-checklist renders a deployment checklist as one scrollable page with
a section panel that follows your reading position and a live filter.

Type to filter, tab/shift+tab to jump between sections, ctrl+y to copy the
commands of the step at the top of the page.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			traceStartup(rt.cfg)
			return app.Run(rt.cfg.App)
		},
	}
	config.RegisterFlags(root.PersistentFlags())
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	})
	root.AddCommand(
		NewSearchCmd(rt),
		NewValidateCmd(rt),
		NewVersionCmd(),
	)
	return root
}

func (rt *cliState) load(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags(), rt.argv)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	rt.cfg = cfg
	return nil
}

// Execute runs the command line and exits with its status.
func Execute() {
	code := run(os.Args[1:], os.Stdout, os.Stderr)
	logging.Close()
	os.Exit(code)
}

// run executes args and maps errors to exit codes: 2 for configuration
// errors, 1 for everything else.
func run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(args)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNoMatches):
		return 1
	case errors.Is(err, config.ErrInvalid):
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 2
	default:
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}
