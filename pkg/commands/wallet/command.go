package wallet

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	sollib "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	cldsol "github.com/wba-cohort/solana-prereq/chain/solana"
	"github.com/wba-cohort/solana-prereq/pkg/commands/flags"
	"github.com/wba-cohort/solana-prereq/pkg/commands/text"
	"github.com/wba-cohort/solana-prereq/pkg/logger"
)

var (
	walletShort = "Wallet file utilities"

	walletLong = text.LongDesc(`
		Creates wallet files and converts them to and from the base58 secret key format that
		browser wallets import and export.

		A wallet file is a JSON array of the 64 secret key bytes, as written by solana-keygen.
	`)

	newExample = text.Examples(`
		# Create dev-wallet.json
		prereq wallet new --out dev-wallet.json
	`)

	toBase58Example = text.Examples(`
		# Print the base58 secret key of a wallet file
		prereq wallet to-base58 dev-wallet.json
	`)

	fromBase58Example = text.Examples(`
		# Write a wallet file from a key exported by a browser wallet
		echo "<base58 secret key>" | prereq wallet from-base58 --out wba-wallet.json
	`)

	addressExample = text.Examples(`
		# Print the public address of a wallet file
		prereq wallet address wba-wallet.json
	`)
)

// Config holds the configuration for wallet commands.
type Config struct {
	// Logger is the logger to use for command output. Required.
	Logger logger.Logger

	// Deps holds optional dependencies that can be overridden.
	// If fields are nil, production defaults are used.
	Deps Deps
}

// Validate checks that all required configuration fields are set.
func (c Config) Validate() error {
	if c.Logger == nil {
		return errors.New("wallet.Config: missing required fields: Logger")
	}

	return nil
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

// NewCommand creates the wallet command with all subcommands.
func NewCommand(cfg Config) (*cobra.Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.deps()
	cfg.Logger = cfg.Logger.Named("wallet")

	cmd := &cobra.Command{
		Use:   "wallet",
		Short: walletShort,
		Long:  walletLong,
	}

	cmd.AddCommand(newNewCmd(cfg))
	cmd.AddCommand(newToBase58Cmd(cfg))
	cmd.AddCommand(newFromBase58Cmd(cfg))
	cmd.AddCommand(newAddressCmd(cfg))

	return cmd, nil
}

// newNewCmd creates the "new" subcommand that generates a key pair.
func newNewCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new",
		Short:   "Generate a new wallet",
		Example: newExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := cfg.deps().KeyGenerator()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "You've generated a new Solana wallet: %s\n", key.PublicKey())

			return emitWallet(cmd, cfg.Logger, key, flags.MustString(cmd.Flags().GetString("out")))
		},
	}

	flags.Output(cmd, "")

	return cmd
}

// newToBase58Cmd creates the "to-base58" subcommand.
func newToBase58Cmd(_ Config) *cobra.Command {
	return &cobra.Command{
		Use:     "to-base58 <wallet-file>",
		Short:   "Print the base58 secret key of a wallet file",
		Example: toBase58Example,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := cldsol.ReadKeypairFile(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), key.String())

			return nil
		},
	}
}

// newFromBase58Cmd creates the "from-base58" subcommand. The key is read from stdin so that it
// does not end up in the shell history.
func newFromBase58Cmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "from-base58",
		Short:   "Convert a base58 secret key read from stdin into a wallet file",
		Example: fromBase58Example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read secret key: %w", err)
			}

			key, err := cldsol.KeypairFromBase58(strings.TrimSpace(string(b)))
			if err != nil {
				return err
			}

			return emitWallet(cmd, cfg.Logger, key, flags.MustString(cmd.Flags().GetString("out")))
		},
	}

	flags.Output(cmd, "")

	return cmd
}

// newAddressCmd creates the "address" subcommand.
func newAddressCmd(_ Config) *cobra.Command {
	return &cobra.Command{
		Use:     "address <wallet-file>",
		Short:   "Print the public address of a wallet file",
		Example: addressExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := cldsol.ReadKeypairFile(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), key.PublicKey())

			return nil
		},
	}
}

// emitWallet writes the wallet file to out, or prints its contents when out is empty. An
// existing file is never overwritten.
func emitWallet(cmd *cobra.Command, lggr logger.Logger, key sollib.PrivateKey, out string) error {
	if out == "" {
		b, err := cldsol.KeypairJSON(key)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "To save your wallet, copy and paste the following into a JSON file:")
		fmt.Fprintln(w, string(b))

		return nil
	}

	if _, err := os.Stat(out); !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("refusing to overwrite %s", out)
	}

	if err := cldsol.WriteKeypairFile(out, key); err != nil {
		return err
	}

	lggr.Infow("Wrote wallet file", "path", out, "address", key.PublicKey().String())
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote wallet %s to %s\n", key.PublicKey(), out)

	return nil
}
