package transfer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cldsol "github.com/wba-cohort/solana-prereq/chain/solana"
	"github.com/wba-cohort/solana-prereq/chain/solana/provider/rpcclient"
	"github.com/wba-cohort/solana-prereq/pkg/commands/cmdutil"
	"github.com/wba-cohort/solana-prereq/pkg/commands/flags"
	"github.com/wba-cohort/solana-prereq/pkg/commands/text"
	"github.com/wba-cohort/solana-prereq/pkg/config"
	"github.com/wba-cohort/solana-prereq/pkg/logger"
	"github.com/wba-cohort/solana-prereq/prereq"
)

var (
	transferShort = "Transfer lamports to another wallet"

	transferLong = text.LongDesc(`
		Transfers lamports from a wallet to a recipient in a single system program transfer.

		With --lamports 0, the default, the whole balance of the wallet less the transaction fee is
		moved, leaving the wallet empty. A failed transfer is printed and logged but does not fail
		the command.
	`)

	transferExample = text.Examples(`
		# Sweep dev-wallet.json into the configured recipient
		prereq transfer

		# Send 0.1 SOL to a given address
		prereq transfer --to SeseaYWQAV5m257VVmCPpNTenjLE9q4oHoSN8wYSwtB --lamports 100000000
	`)
)

// Config holds the configuration for the transfer command.
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
		return errors.New("transfer.Config: missing required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

type transferFlags struct {
	to               string
	lamports         uint64
	computeUnitPrice uint64
}

// NewCommand creates the transfer command.
func NewCommand(cfg Config) (*cobra.Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.deps()
	cfg.Logger = cfg.Logger.Named(prereq.OpTransfer)

	cmd := &cobra.Command{
		Use:     "transfer",
		Short:   transferShort,
		Long:    transferLong,
		Example: transferExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := cfg.Settings.Transfer
			f := transferFlags{
				to:               flags.StringOr(cmd, "to", s.Recipient),
				lamports:         flags.Uint64Or(cmd, "lamports", s.Lamports),
				computeUnitPrice: flags.Uint64Or(cmd, "compute-unit-price", s.ComputeUnitPrice),
			}

			return runTransfer(cmd, cfg, f)
		},
	}

	// Shared flags
	flags.Wallet(cmd, "transfer.wallet_path")
	flags.Lamports(cmd, "Amount of lamports to transfer, 0 sweeps the whole balance (default: transfer.lamports)")
	flags.Cluster(cmd)
	flags.ComputeUnitPrice(cmd, "transfer.compute_unit_price")

	// Local flags specific to this command
	cmd.Flags().StringP("to", "t", "", "Recipient address (default: transfer.recipient)")

	return cmd, nil
}

// runTransfer executes the transfer command logic.
func runTransfer(cmd *cobra.Command, cfg Config, f transferFlags) error {
	deps := cfg.deps()
	settings := cfg.Settings

	to, err := cldsol.ParseAddress("recipient", f.to)
	if err != nil {
		return err
	}

	cluster, rpcURL, err := cmdutil.Endpoint(cmd, settings)
	if err != nil {
		return err
	}

	keyGen := cmdutil.WalletKeyGen(cmd, settings.Transfer.WalletPath, settings.Transfer.WalletKey)
	chain, err := deps.ChainLoader(cluster, rpcURL, keyGen)
	if err != nil {
		return fmt.Errorf("failed to load wallet: %w", err)
	}

	cfg.Logger.Infow("Transferring lamports",
		"from", chain.Address().String(),
		"to", to.String(),
		"lamports", f.lamports,
		"sweep", f.lamports == 0,
		"chain", chain.String(),
	)

	ctx, cancel := cmdutil.OperationContext(cmd, settings)
	defer cancel()

	res := prereq.Transfer(ctx, deps.TransferClient(chain), prereq.TransferRequest{
		From:     chain.Address(),
		To:       to,
		Lamports: f.lamports,
		Cluster:  chain.Cluster,
		RPCURL:   chain.URL,
	},
		rpcclient.WithCommitment(settings.CommitmentType()),
		rpcclient.WithTxModifiers(rpcclient.ComputeBudget(0, f.computeUnitPrice)...),
	)
	cmdutil.Report(cmd, cfg.Logger, res)

	return nil
}
