package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/deploy-checklist/internal/app"
	"github.com/atomicstack/deploy-checklist/internal/theme"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalid marks configuration errors; callers exit with status 2.
var ErrInvalid = errors.New("invalid configuration")

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
	// File is the config file that was read, if any.
	File string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const envPrefix = "DEPLOY_CHECKLIST"

var defaultConfigNames = []string{"deploy-checklist.yaml", "deploy-checklist.yml"}

const (
	KeyContent   = "content"
	KeyQuery     = "query"
	KeySection   = "section"
	KeyWidth     = "width"
	KeyHeight    = "height"
	KeyFooter    = "footer"
	KeyTheme     = "theme"
	KeyWatch     = "watch"
	KeyMarkdown  = "markdown"
	KeyHighlight = "highlight"
	KeyTrace     = "trace"
	KeyLogFile   = "log-file"
	KeyConfig    = "config"
)

// RegisterFlags adds the runtime flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyContent, "", "path to a checklist YAML file (built-in checklist when empty)")
	fs.String(KeyQuery, "", "initial filter query")
	fs.String(KeySection, "", "section id or title to scroll to on start")
	fs.Int(KeyWidth, 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int(KeyHeight, 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool(KeyFooter, false, "enable footer hint row")
	fs.String(KeyTheme, theme.Default().Name, "colour theme ("+strings.Join(theme.Names(), ", ")+")")
	fs.Bool(KeyWatch, false, "reload the content file when it changes on disk")
	fs.Bool(KeyMarkdown, true, "render text blocks as markdown")
	fs.Bool(KeyHighlight, true, "syntax highlight command blocks")
	fs.Bool(KeyTrace, false, "enable verbose JSON trace logging")
	fs.String(KeyLogFile, "", "path to the log file")
	fs.String(KeyConfig, "", "config file (default ./deploy-checklist.yaml when present)")
}

// Load resolves configuration from parsed flags, DEPLOY_CHECKLIST_* environment
// variables, and an optional YAML config file, in that order of precedence.
func Load(fs *pflag.FlagSet, args []string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	cfgFile := v.GetString(KeyConfig)
	if cfgFile == "" {
		cfgFile = findConfigFile(".")
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: read config: %v", ErrInvalid, err)
		}
	}

	cfg := Config{
		App: app.Config{
			ContentPath: v.GetString(KeyContent),
			Query:       v.GetString(KeyQuery),
			Section:     v.GetString(KeySection),
			Width:       v.GetInt(KeyWidth),
			Height:      v.GetInt(KeyHeight),
			ShowFooter:  v.GetBool(KeyFooter),
			Theme:       v.GetString(KeyTheme),
			Watch:       v.GetBool(KeyWatch),
			Markdown:    v.GetBool(KeyMarkdown),
			Highlight:   v.GetBool(KeyHighlight),
		},
		Logging: Logging{
			FilePath: v.GetString(KeyLogFile),
			Trace:    v.GetBool(KeyTrace),
		},
		Args: append([]string(nil), args...),
		File: v.ConfigFileUsed(),
	}
	cfg.Flags = map[string]string{
		KeyContent:   cfg.App.ContentPath,
		KeyQuery:     cfg.App.Query,
		KeySection:   cfg.App.Section,
		KeyWidth:     strconv.Itoa(cfg.App.Width),
		KeyHeight:    strconv.Itoa(cfg.App.Height),
		KeyFooter:    strconv.FormatBool(cfg.App.ShowFooter),
		KeyTheme:     cfg.App.Theme,
		KeyWatch:     strconv.FormatBool(cfg.App.Watch),
		KeyMarkdown:  strconv.FormatBool(cfg.App.Markdown),
		KeyHighlight: strconv.FormatBool(cfg.App.Highlight),
	}
	return cfg, nil
}

// LoadArgs parses args against a fresh flag set. Tests use it to build a
// Config without a cobra command.
func LoadArgs(args []string) (Config, error) {
	fs := pflag.NewFlagSet("deploy-checklist", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return Load(fs, args)
}

// Validate rejects values the application cannot start with.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("%w: width must be >= 0 (got %d)", ErrInvalid, cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("%w: height must be >= 0 (got %d)", ErrInvalid, cfg.App.Height)
	}
	if _, ok := theme.Named(cfg.App.Theme); !ok {
		return fmt.Errorf("%w: unknown theme %q (want one of %s)", ErrInvalid, cfg.App.Theme, strings.Join(theme.Names(), ", "))
	}
	if cfg.App.Watch && cfg.App.ContentPath == "" {
		return fmt.Errorf("%w: --watch needs --content", ErrInvalid)
	}
	return nil
}

// findConfigFile returns the first default config file present in dir, or "".
// Only names with a YAML extension count, so a built binary named after the
// program is never read as configuration.
func findConfigFile(dir string) string {
	for _, name := range defaultConfigNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
