package commands

import (
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
)

// CLI definition & global flags.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable debug logging on stderr"`
	EnvFile string           `name:"env-file" help:"Read DEVTO_* variables from this file when not set in the environment" default:".env"`
	APIURL  string           `name:"api-url" help:"dev.to API base URL (overrides DEVTO_API_URL)"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	// Paths is optional so that arity errors print our own usage line. A path
	// starting with "-" must follow "--".
	Paths []string `arg:"" optional:"" name:"path" help:"Markdown file to convert (use -- before a path starting with -)"`

	stderr io.Writer    `kong:"-"`
	logger *slog.Logger `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once. Logs go to stderr
// because stdout carries the JSON result.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(c.logger)
	return nil
}

// Logger returns the logger installed by AfterApply.
func (c *CLI) Logger() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}
