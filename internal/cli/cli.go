// Package cli implements the casework command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chazu/casework/internal/config"
	"github.com/chazu/casework/internal/studio"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "casework"

// Version is the release version, set at build time with -ldflags.
var Version = "dev"

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

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the configuration loaded for the running command.
func (c *CLI) Config() config.Config { return c.cfg }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Casework lays out parametric cabinets",
		Long: `Casework turns a cabinet description into a part-by-part layout: carcass
panels, shelves, doors, drawer fronts and handles, with their sizes and
positions in inches.

A cabinet can be described in plain words ("36 wide oak kitchen cabinet with
3 drawers"), with flags, or in a Lisp file.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(appName + " {{.Version}}\n")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/casework/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.propertiesCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.meshCommand())
	root.AddCommand(c.materialsCommand())
	root.AddCommand(c.serveCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "addr", cfg.Server.Addr)
	return nil
}

// newStudio builds a studio from the loaded config. The CLI never waits
// for the workspace delay, so it is dropped here.
func (c *CLI) newStudio() *studio.Studio {
	cfg := c.cfg
	cfg.Workspace.Delay.Duration = 0
	return studio.New(cfg, c.Logger)
}
