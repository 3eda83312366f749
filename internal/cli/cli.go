// Package cli implements the spritesheet command-line interface: checking
// TOML sprite sheets, listing easing curves and previewing sheets in a
// window.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/sprites"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w. The sprites package logs through the same
// logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
	sprites.SetLogger(c.Logger)
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "spritesheet",
		Short:        "Check and preview stated sprite sheets",
		SilenceUsage: true,
	}
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.easingsCommand())
	root.AddCommand(c.previewCommand())
	return root
}
