// Package cli implements the bindery command-line interface.
//
// This package provides commands for imposing a PDF into folded signatures,
// dry-running the signature planner and browsing the resulting sheets. The
// CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - impose: Write the imposed PDF for a source document
//   - plan: Print the signature sizes and sheet map without writing a PDF
//   - preview: Browse the sheets of a plan interactively
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --log-level for an explicit level. The page order and page map are logged
// at debug level.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bindery/pkg/buildinfo"
	"github.com/matzehuels/bindery/pkg/errors"
	"github.com/matzehuels/bindery/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and completion scripts.
const appName = "bindery"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string // --config
	logLevel   string // --log-level
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Bindery imposes PDFs into folded signatures for bookbinding",
		Long: `Bindery rearranges the pages of a PDF so that, printed 2-up and duplex and
folded in stacks, the sheets form signatures that can be sewn into a book.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.applyLogLevel,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML file with default options")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(c.imposeCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// applyLogLevel honours --log-level. It runs after -v has been applied, so
// an explicit level wins.
func (c *CLI) applyLogLevel(cmd *cobra.Command, args []string) error {
	if c.logLevel == "" {
		return nil
	}
	level, err := log.ParseLevel(c.logLevel)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid --log-level %q", c.logLevel)
	}
	c.SetLogLevel(level)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}
