// Package cli assembles the prereq root command.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wba-cohort/solana-prereq/pkg/commands"
	"github.com/wba-cohort/solana-prereq/pkg/commands/flags"
	"github.com/wba-cohort/solana-prereq/pkg/commands/text"
	"github.com/wba-cohort/solana-prereq/pkg/config"
	"github.com/wba-cohort/solana-prereq/pkg/logger"
)

// DefaultConfigPath is the config file read when --config is not given. It is optional.
const DefaultConfigPath = "prereq.yml"

var rootLong = text.LongDesc(`
	Tooling for the Solana devnet prerequisites: request an airdrop for a wallet, record an
	enrollment with the prereq program, move lamports between wallets, and create or convert
	wallet files.

	Settings are read from the config file, overridden by PREREQ_* environment variables, and
	overridden again by command line flags.
`)

// App is the prereq command line application.
type App struct {
	root *cobra.Command
	lggr logger.Logger
}

// NewApp creates the application with a logger writing to stderr.
func NewApp() (*App, error) {
	level := zap.NewAtomicLevel()
	lggr, err := logger.NewWith(func(cfg *zap.Config) {
		cfg.Level = level
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)

		return nil, err
	}

	root, err := NewRootCmd(lggr, level)
	if err != nil {
		lggr.Errorw("Failed to create commands", "error", err)

		return nil, err
	}

	return &App{root: root, lggr: lggr}, nil
}

// Run executes the root command with the process arguments.
func (a *App) Run() error {
	defer func() { _ = a.lggr.Sync() }()

	return a.root.Execute()
}

// NewRootCmd creates the root command. The settings are loaded by a persistent pre-run hook
// before any subcommand runs, and level is adjusted to the configured log level.
func NewRootCmd(lggr logger.Logger, level zap.AtomicLevel) (*cobra.Command, error) {
	settings := config.Default()

	root := &cobra.Command{
		Use:          "prereq",
		Short:        "Solana devnet prerequisite tooling",
		Long:         rootLong,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadSettings(cmd, lggr)
			if err != nil {
				return err
			}

			lvl, err := logger.ParseLevel(loaded.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			level.SetLevel(lvl.Level)

			*settings = *loaded

			return nil
		},
	}

	root.PersistentFlags().StringP("config", "c", DefaultConfigPath, "Config file, optional")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (default: log_level)")

	cmds, err := commands.New(lggr, settings).All()
	if err != nil {
		return nil, err
	}
	root.AddCommand(cmds...)

	return root, nil
}

// loadSettings loads and validates the settings named by the --config flag.
func loadSettings(cmd *cobra.Command, lggr logger.Logger) (*config.Config, error) {
	path := flags.MustString(cmd.Flags().GetString("config"))
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if cmd.Flags().Changed("config") {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		lggr.Debugw("No config file, using defaults and environment", "path", path)
	}

	loaded, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	loaded.LogLevel = flags.StringOr(cmd, "log-level", loaded.LogLevel)

	if err := loaded.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return loaded, nil
}
