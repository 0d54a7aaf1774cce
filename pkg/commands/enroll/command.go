package enroll

import (
	"encoding/hex"
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
	enrollShort = "Record an enrollment with the prereq program"

	enrollLong = text.LongDesc(`
		Submits the "complete" instruction of the prereq program, signed by the enrollment wallet.

		The program stores the github handle in an account derived from the seed and the wallet
		address, so a wallet can only enroll once. A rejected enrollment, including one for a
		wallet that is already enrolled, is printed and logged but does not fail the command.

		Use --dry-run to print the derived account and the encoded instruction without contacting
		the cluster.
	`)

	enrollExample = text.Examples(`
		# Enroll with the wallet in wba-wallet.json
		prereq enroll --github octocat

		# Inspect the instruction without sending it
		prereq enroll --github octocat --dry-run

		# Pay a priority fee when devnet is congested
		prereq enroll --github octocat --compute-unit-price 10000
	`)
)

// Config holds the configuration for the enroll command.
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
		return errors.New("enroll.Config: missing required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

type enrollFlags struct {
	github           string
	programID        string
	seed             string
	dryRun           bool
	computeUnitPrice uint64
	computeUnitLimit uint32
}

// NewCommand creates the enroll command.
func NewCommand(cfg Config) (*cobra.Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.deps()
	cfg.Logger = cfg.Logger.Named(prereq.OpEnroll)

	cmd := &cobra.Command{
		Use:     "enroll",
		Short:   enrollShort,
		Long:    enrollLong,
		Example: enrollExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := cfg.Settings.Enroll
			f := enrollFlags{
				github:           flags.StringOr(cmd, "github", s.Github),
				programID:        flags.StringOr(cmd, "program-id", s.ProgramID),
				seed:             flags.StringOr(cmd, "seed", s.Seed),
				dryRun:           flags.MustBool(cmd.Flags().GetBool("dry-run")),
				computeUnitPrice: flags.Uint64Or(cmd, "compute-unit-price", s.ComputeUnitPrice),
				computeUnitLimit: flags.Uint32Or(cmd, "compute-unit-limit", s.ComputeUnitLimit),
			}

			return runEnroll(cmd, cfg, f)
		},
	}

	// Shared flags
	flags.Wallet(cmd, "enroll.wallet_path")
	flags.Cluster(cmd)
	flags.ComputeUnitPrice(cmd, "enroll.compute_unit_price")

	// Local flags specific to this command
	cmd.Flags().StringP("github", "g", "", "Github handle to record (default: enroll.github)")
	cmd.Flags().String("program-id", "", "Address of the prereq program (default: enroll.program_id)")
	cmd.Flags().String("seed", "", "Seed of the enrollment account (default: enroll.seed)")
	cmd.Flags().Bool("dry-run", false, "Print the enrollment account and instruction without sending")
	cmd.Flags().Uint32("compute-unit-limit", 0, "Compute unit limit of the transaction (default: enroll.compute_unit_limit)")

	return cmd, nil
}

// runEnroll executes the enroll command logic.
func runEnroll(cmd *cobra.Command, cfg Config, f enrollFlags) error {
	deps := cfg.deps()
	settings := cfg.Settings

	programID, err := cldsol.ParseAddress("program id", f.programID)
	if err != nil {
		return err
	}

	cluster, rpcURL, err := cmdutil.Endpoint(cmd, settings)
	if err != nil {
		return err
	}

	keyGen := cmdutil.WalletKeyGen(cmd, settings.Enroll.WalletPath, settings.Enroll.WalletKey)
	chain, err := deps.ChainLoader(cluster, rpcURL, keyGen)
	if err != nil {
		return fmt.Errorf("failed to load wallet: %w", err)
	}

	req := prereq.EnrollRequest{
		Signer:    chain.Address(),
		ProgramID: programID,
		Seed:      []byte(f.seed),
		Github:    []byte(f.github),
		Cluster:   chain.Cluster,
		RPCURL:    chain.URL,
	}

	if f.dryRun {
		return printDryRun(cmd, cfg.Logger, req)
	}

	cfg.Logger.Infow("Submitting enrollment",
		"wallet", req.Signer.String(),
		"github", f.github,
		"program", programID.String(),
		"chain", chain.String(),
	)

	ctx, cancel := cmdutil.OperationContext(cmd, settings)
	defer cancel()

	res := prereq.Enroll(ctx, deps.Sender(chain), req,
		rpcclient.WithCommitment(settings.CommitmentType()),
		rpcclient.WithTxModifiers(rpcclient.ComputeBudget(f.computeUnitLimit, f.computeUnitPrice)...),
	)
	cmdutil.Report(cmd, cfg.Logger, res)

	return nil
}

// printDryRun prints the enrollment account and the encoded instruction.
func printDryRun(cmd *cobra.Command, lggr logger.Logger, req prereq.EnrollRequest) error {
	enrollment, err := prereq.BuildEnrollment(req)
	if err != nil {
		return err
	}

	data, err := enrollment.Instruction.Data()
	if err != nil {
		return fmt.Errorf("failed to encode instruction: %w", err)
	}

	lggr.Debugw("Built enrollment", "bump", enrollment.Bump, "dataLen", len(data))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Program:            %s\n", req.ProgramID)
	fmt.Fprintf(out, "Signer:             %s\n", req.Signer)
	fmt.Fprintf(out, "Enrollment account: %s (bump %d)\n", enrollment.Address, enrollment.Bump)
	fmt.Fprintf(out, "Instruction data:   %s\n", hex.EncodeToString(data))

	return nil
}
