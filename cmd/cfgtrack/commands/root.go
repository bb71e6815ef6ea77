// Package commands implements the CLI commands for cfgtrack.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/cfgtrack/internal/app"
	"go.trai.ch/cfgtrack/internal/build"
	"go.trai.ch/cfgtrack/internal/core/domain"
)

// CLI represents the command line interface for cfgtrack.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	getwd   func() (string, error)
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, cwd string, fileNames []string, opts app.ResolveOptions) (*app.Resolution, error)
	Inspect(cwd, key string) (*domain.RecordSnapshot, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cfgtrack",
		Short:         "Resolve tool configs and record what invalidates them",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
		getwd:   os.Getwd,
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newInspectCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetWorkingDir fixes the directory commands run from. Used for testing.
func (c *CLI) SetWorkingDir(dir string) {
	c.getwd = func() (string, error) { return dir, nil }
}
