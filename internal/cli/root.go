// Package cli implements the reviewdash command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/reviewdash/internal/logging"
	"github.com/mesh-intelligence/reviewdash/internal/paths"
	"github.com/mesh-intelligence/reviewdash/internal/render"
	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	input     string
	jsonMode  bool
}

// app is the state shared by subcommands once the root pre-run has loaded
// the configuration.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	logger    *zap.Logger
}

// NewRootCmd creates the top-level "reviewdash" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "reviewdash",
		Short: "Sentiment dashboard for product reviews",
		Long: "Reviewdash loads a CSV of product reviews, labels each review positive,\n" +
			"neutral or negative from its rating, and serves ten dashboard views\n" +
			"in the terminal or over HTTP.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory for exports (default: platform data dir)")
	root.PersistentFlags().StringVar(&a.flags.input, "input", "", "review CSV to load (overrides the input config key)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newViewsCmd(a))
	root.AddCommand(newViewCmd(a))
	root.AddCommand(newInfoCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newServeCmd(a))

	return root
}

// setup resolves the config directory, loads the configuration and builds
// the logger.
func (a *app) setup() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	if a.flags.input != "" {
		cfg.Input = a.flags.input
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return userError(err)
	}

	a.configDir = configDir
	a.cfg = cfg
	a.logger = logger
	return nil
}

// dataDir returns the data directory: --data-dir flag > config.yaml data_dir >
// REVIEWDASH_DATA_DIR env > platform default.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.cfg.DataDir)
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "reviewdash:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }

func sysError(err error) error { return &exitError{code: exitSysError, err: err} }

// exitCode maps err to a process exit code. Errors not marked otherwise,
// such as cobra's flag and argument errors, are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// classify marks an error from the dataset and analysis layers: bad input
// data or requests are user errors, anything else is a system error.
func classify(err error) error {
	switch {
	case errors.Is(err, types.ErrMissingColumn),
		errors.Is(err, types.ErrSchemaMismatch),
		errors.Is(err, types.ErrEmptyInput),
		errors.Is(err, types.ErrUnknownView),
		errors.Is(err, types.ErrUnknownSentiment),
		errors.Is(err, errNoInput):
		return userError(err)
	default:
		return sysError(err)
	}
}

// writeJSONResult prints v as indented JSON on the command's stdout.
func writeJSONResult(cmd *cobra.Command, v any) error {
	return render.JSON(cmd.OutOrStdout(), v)
}
