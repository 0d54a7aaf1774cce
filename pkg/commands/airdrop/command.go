package airdrop

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wba-cohort/solana-prereq/pkg/commands/cmdutil"
	"github.com/wba-cohort/solana-prereq/pkg/commands/flags"
	"github.com/wba-cohort/solana-prereq/pkg/commands/text"
	"github.com/wba-cohort/solana-prereq/pkg/config"
	"github.com/wba-cohort/solana-prereq/pkg/logger"
	"github.com/wba-cohort/solana-prereq/prereq"
)

var (
	airdropShort = "Request an airdrop of lamports for a wallet"

	airdropLong = text.LongDesc(`
		Requests an airdrop of lamports from the cluster faucet for the public address of a wallet.

		The request is sent once and is not confirmed. On success the transaction signature is
		printed as an explorer link. A refused request, such as a spent faucet quota, is printed
		and logged but does not fail the command.
	`)

	airdropExample = text.Examples(`
		# Request 2 SOL on devnet for the wallet in dev-wallet.json
		prereq airdrop

		# Request 0.5 SOL for another wallet
		prereq airdrop --wallet ./keys/other.json --lamports 500000000

		# Request against a local validator
		prereq airdrop --cluster localnet
	`)
)

// Config holds the configuration for the airdrop command.
type Config struct {
	// Logger is the logger to use for command output. Required.
	Logger logger.Logger

	// Settings is the loaded configuration. It is read when the command runs, so it may be filled
	// in after the command is created. Required.
	Settings *config.Config

	// Deps holds optional dependencies that can be overridden.
	// If fields are nil, production defaults are used.
	Deps Deps
}

// Validate checks that all required configuration fields are set.
func (c Config) Validate() error {
	var missing []string

	if c.Logger == nil {
		missing = append(missing, "Logger")
	}
	if c.Settings == nil {
		missing = append(missing, "Settings")
	}

	if len(missing) > 0 {
		return errors.New("airdrop.Config: missing required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

// NewCommand creates the airdrop command.
func NewCommand(cfg Config) (*cobra.Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.deps()
	cfg.Logger = cfg.Logger.Named(prereq.OpAirdrop)

	cmd := &cobra.Command{
		Use:     "airdrop",
		Short:   airdropShort,
		Long:    airdropLong,
		Example: airdropExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAirdrop(cmd, cfg)
		},
	}

	flags.Wallet(cmd, "airdrop.wallet_path")
	flags.Lamports(cmd, "Amount of lamports to request (default: airdrop.lamports)")
	flags.Cluster(cmd)

	return cmd, nil
}

// runAirdrop executes the airdrop command logic.
func runAirdrop(cmd *cobra.Command, cfg Config) error {
	deps := cfg.deps()
	settings := cfg.Settings

	cluster, rpcURL, err := cmdutil.Endpoint(cmd, settings)
	if err != nil {
		return err
	}

	keyGen := cmdutil.WalletKeyGen(cmd, settings.Airdrop.WalletPath, settings.Airdrop.WalletKey)
	chain, err := deps.ChainLoader(cluster, rpcURL, keyGen)
	if err != nil {
		return fmt.Errorf("failed to load wallet: %w", err)
	}

	lamports := flags.Uint64Or(cmd, "lamports", settings.Airdrop.Lamports)

	cfg.Logger.Infow("Requesting airdrop",
		"wallet", chain.Address().String(),
		"lamports", lamports,
		"chain", chain.String(),
	)

	ctx, cancel := cmdutil.OperationContext(cmd, settings)
	defer cancel()

	res := prereq.RequestAirdrop(ctx, deps.AirdropClient(chain), prereq.AirdropRequest{
		Recipient:  chain.Address(),
		Lamports:   lamports,
		Commitment: settings.CommitmentType(),
		Cluster:    chain.Cluster,
		RPCURL:     chain.URL,
	})
	cmdutil.Report(cmd, cfg.Logger, res)

	return nil
}
