package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/deploy-checklist/internal/backend"
	"github.com/atomicstack/deploy-checklist/internal/content"
	"github.com/atomicstack/deploy-checklist/internal/logging/events"
	"github.com/atomicstack/deploy-checklist/internal/theme"
	"github.com/atomicstack/deploy-checklist/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const reloadDebounce = 250 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	ContentPath string
	Query       string
	Section     string
	Width       int
	Height      int
	ShowFooter  bool
	Theme       string
	Watch       bool
	Markdown    bool
	Highlight   bool
}

// LoadTree returns the checklist named by path, or the built-in one when path
// is empty.
func LoadTree(path string) (content.Tree, string, error) {
	if path == "" {
		tree := content.Default()
		events.Content.Load("built-in", len(tree), tree.StepCount())
		return tree, "built-in", nil
	}
	tree, err := content.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return tree, path, nil
}

// Options translates cfg into UI options for tree.
func (cfg Config) Options(tree content.Tree, source string) ui.Options {
	styles, ok := theme.Named(cfg.Theme)
	if !ok {
		styles = theme.Default()
	}
	return ui.Options{
		Tree:       tree,
		Source:     source,
		Query:      cfg.Query,
		Section:    cfg.Section,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Styles:     styles,
		Markdown:   cfg.Markdown,
		Highlight:  cfg.Highlight,
	}
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	tree, source, err := LoadTree(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	opts := cfg.Options(tree, source)
	if cfg.Watch && cfg.ContentPath != "" {
		watcher, err := backend.NewWatcher(cfg.ContentPath, reloadDebounce)
		if err != nil {
			return err
		}
		defer watcher.Stop()
		opts.Watcher = watcher
	}
	model := ui.NewModel(opts)
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
