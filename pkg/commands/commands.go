// Package commands provides the CLI commands of the prereq tool.
//
// There are two ways to use commands from this package:
//
// 1. Via the Commands factory (recommended for most use cases):
//
//	cmds := commands.New(lggr, settings)
//	airdropCmd, err := cmds.Airdrop()
//	if err != nil {
//	    return err
//	}
//	app.AddCommand(airdropCmd)
//
// 2. Via direct package imports (for advanced DI/testing):
//
//	import "github.com/wba-cohort/solana-prereq/pkg/commands/enroll"
//
//	cmd, err := enroll.NewCommand(enroll.Config{
//	    Logger:   lggr,
//	    Settings: settings,
//	    Deps:     enroll.Deps{...},  // inject mocks for testing
//	})
package commands

import (
	"github.com/spf13/cobra"

	"github.com/wba-cohort/solana-prereq/pkg/commands/airdrop"
	"github.com/wba-cohort/solana-prereq/pkg/commands/enroll"
	"github.com/wba-cohort/solana-prereq/pkg/commands/transfer"
	"github.com/wba-cohort/solana-prereq/pkg/commands/wallet"
	"github.com/wba-cohort/solana-prereq/pkg/config"
	"github.com/wba-cohort/solana-prereq/pkg/logger"
)

// Commands provides a factory for creating CLI commands with shared configuration.
// This allows setting the logger and settings once and reusing them across all commands.
type Commands struct {
	lggr     logger.Logger
	settings *config.Config
}

// New creates a new Commands factory. The settings are read when a command runs, so the caller
// may load them after the commands are created, e.g. in a persistent pre-run hook.
func New(lggr logger.Logger, settings *config.Config) *Commands {
	return &Commands{lggr: lggr, settings: settings}
}

// Airdrop creates the airdrop command.
func (c *Commands) Airdrop() (*cobra.Command, error) {
	return airdrop.NewCommand(airdrop.Config{
		Logger:   c.lggr,
		Settings: c.settings,
	})
}

// Enroll creates the enroll command.
func (c *Commands) Enroll() (*cobra.Command, error) {
	return enroll.NewCommand(enroll.Config{
		Logger:   c.lggr,
		Settings: c.settings,
	})
}

// Transfer creates the transfer command.
func (c *Commands) Transfer() (*cobra.Command, error) {
	return transfer.NewCommand(transfer.Config{
		Logger:   c.lggr,
		Settings: c.settings,
	})
}

// Wallet creates the wallet command group.
func (c *Commands) Wallet() (*cobra.Command, error) {
	return wallet.NewCommand(wallet.Config{
		Logger: c.lggr,
	})
}

// All creates every command, in the order they appear in the help output.
func (c *Commands) All() ([]*cobra.Command, error) {
	ctors := []func() (*cobra.Command, error){c.Airdrop, c.Enroll, c.Transfer, c.Wallet}

	cmds := make([]*cobra.Command, 0, len(ctors))
	for _, ctor := range ctors {
		cmd, err := ctor()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}

	return cmds, nil
}
