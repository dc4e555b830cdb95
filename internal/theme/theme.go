package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Name string
	// Markdown names the glamour style used for text blocks.
	Markdown string
	// Syntax names the chroma style used for command blocks.
	Syntax string

	NavHeader          *lipgloss.Style
	NavItem            *lipgloss.Style
	NavCount           *lipgloss.Style
	NavIndicator       *lipgloss.Style
	NavActive          *lipgloss.Style
	NavActiveIndicator *lipgloss.Style
	NavBorder          *lipgloss.Style

	SectionTitle       *lipgloss.Style
	SectionDescription *lipgloss.Style
	StepTitle          *lipgloss.Style
	StepDescription    *lipgloss.Style
	CommandPlatform    *lipgloss.Style
	CommandLine        *lipgloss.Style
	PitfallBox         *lipgloss.Style
	PitfallTitle       *lipgloss.Style
	PitfallFix         *lipgloss.Style
	Text               *lipgloss.Style
	NoMatches          *lipgloss.Style
	Hint               *lipgloss.Style

	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Footer            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
}

var darkStyles = Styles{
	Name:     "dark",
	Markdown: "dark",
	Syntax:   "monokai",
	NavHeader: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	NavItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	NavCount: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	NavIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	NavActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	NavActiveIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	NavBorder: ptr(
		lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(lipgloss.Color("238")),
	),
	SectionTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	SectionDescription: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	),
	StepTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	StepDescription: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	CommandPlatform: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	CommandLine: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	PitfallBox: ptr(
		lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208")).Padding(0, 1),
	),
	PitfallTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	),
	PitfallFix: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Text: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	NoMatches: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
}

var lightStyles = Styles{
	Name:     "light",
	Markdown: "light",
	Syntax:   "github",
	NavHeader: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Bold(true),
	),
	NavItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	),
	NavCount: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	),
	NavIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	NavActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("153")).Bold(true),
	),
	NavActiveIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Background(lipgloss.Color("153")),
	),
	NavBorder: ptr(
		lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(lipgloss.Color("250")),
	),
	SectionTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
	),
	SectionDescription: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true),
	),
	StepTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Bold(true),
	),
	StepDescription: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	CommandPlatform: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
	),
	CommandLine: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
	),
	PitfallBox: ptr(
		lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("166")).Padding(0, 1),
	),
	PitfallTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("166")).Bold(true),
	),
	PitfallFix: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	),
	Text: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
	),
	NoMatches: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Blink(true),
	),
}

var byName = map[string]*Styles{
	"dark":  &darkStyles,
	"light": &lightStyles,
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &darkStyles
}

// Named returns the style set registered under name.
func Named(name string) (*Styles, bool) {
	s, ok := byName[name]
	return s, ok
}

// Names lists the registered style sets.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Toggle returns the other style set.
func Toggle(current *Styles) *Styles {
	if current != nil && current.Name == darkStyles.Name {
		return &lightStyles
	}
	return &darkStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
