// Package cli implements the holeplan command-line interface.
//
// # Commands
//
//   - place: compute the wall openings needed by every duct and pipe
//   - validate: check a scene file without placing anything
//   - preview: write triangle meshes of the walls, cut, and the conduits
//
// Settings come from compiled defaults, then the --config TOML file, then
// flags. All commands support --verbose (-v) for debug-level logging; the
// logger is passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chazu/holeplan/internal/config"
)

// Output formats accepted by --format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var version = "dev"

// SetVersion sets the version shown by --version.
func SetVersion(v string) {
	version = v
}

// Execute runs the holeplan CLI with the process's standard streams.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// flags holds the values of the persistent flags.
type flags struct {
	configPath string
	verbose    bool
	clearance  float64
	workers    int
	format     string
	output     string
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	flags  flags
	cfg    config.Config
}

// NewRootCommand builds the command tree. Results go to stdout unless
// --output is given; logs go to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "holeplan",
		Short:         "holeplan places openings where ducts and pipes cross walls",
		Long:          `holeplan reads a scene of levels, walls, ducts and pipes, casts each conduit's centerline against the walls, and reports one sized opening per crossed wall.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "TOML settings file")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable verbose logging")
	pf.Float64Var(&a.flags.clearance, "clearance", 0, "margin added to each conduit dimension (default from config, 0.16)")
	pf.IntVar(&a.flags.workers, "workers", 0, "conduits processed concurrently, 0 for one per CPU")
	pf.StringVarP(&a.flags.format, "format", "f", FormatJSON, "output format: json or yaml")
	pf.StringVarP(&a.flags.output, "output", "o", "", "write results to this file instead of stdout")

	root.AddCommand(a.newPlaceCmd())
	root.AddCommand(a.newValidateCmd())
	root.AddCommand(a.newPreviewCmd())

	return root
}

// setup loads settings, applies flag overrides and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("clearance") {
		cfg.Clearance = a.flags.clearance
	}
	if f.Changed("workers") {
		cfg.Workers = a.flags.workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	switch a.flags.format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q, expected json or yaml", a.flags.format)
	}
	a.cfg = cfg

	level := cfg.Level()
	if a.flags.verbose {
		level = log.DebugLevel
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, newLogger(a.stderr, level)))
	return nil
}
