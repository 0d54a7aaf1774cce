// Package cmdutil holds the setup steps shared by the prereq commands: resolving the cluster,
// choosing the wallet and reporting operation results.
package cmdutil

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	cldsol "github.com/wba-cohort/solana-prereq/chain/solana"
	"github.com/wba-cohort/solana-prereq/chain/solana/provider"
	"github.com/wba-cohort/solana-prereq/pkg/commands/flags"
	"github.com/wba-cohort/solana-prereq/pkg/config"
	"github.com/wba-cohort/solana-prereq/pkg/logger"
	"github.com/wba-cohort/solana-prereq/prereq"
)

// ChainLoaderFunc connects to a cluster with the signer produced by keyGen.
type ChainLoaderFunc func(cluster cldsol.Cluster, rpcURL string, keyGen provider.PrivateKeyGenerator) (*cldsol.Chain, error)

// Endpoint resolves the cluster and RPC URL from the --cluster and --rpc-url flags, falling
// back to the settings. An empty URL resolves to the public endpoint of the cluster.
func Endpoint(cmd *cobra.Command, settings *config.Config) (cldsol.Cluster, string, error) {
	cluster, err := cldsol.ParseCluster(flags.StringOr(cmd, "cluster", settings.Cluster))
	if err != nil {
		return "", "", err
	}

	rpcURL := flags.StringOr(cmd, "rpc-url", settings.RPCURL)
	if rpcURL == "" {
		rpcURL = cluster.RPCURL()
	}

	return cluster, rpcURL, nil
}

// WalletKeyGen chooses the signer of a command. A --wallet flag always wins; otherwise the
// configured raw key is preferred over the configured wallet file.
func WalletKeyGen(cmd *cobra.Command, path, rawKey string) provider.PrivateKeyGenerator {
	if cmd.Flags().Changed("wallet") {
		return provider.PrivateKeyFromFile(flags.MustString(cmd.Flags().GetString("wallet")))
	}

	return provider.WalletKeyGen(path, rawKey)
}

// OperationContext bounds an operation by the configured timeout.
func OperationContext(cmd *cobra.Command, settings *config.Config) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithTimeout(ctx, settings.Timeout)
}

// Report prints the result message to the command output and logs the outcome. A failed
// operation is not an error of the command.
func Report(cmd *cobra.Command, lggr logger.Logger, res prereq.Result) {
	if res.OK() {
		lggr.Infow("Transaction submitted",
			"operation", res.Operation,
			"signature", res.Signature.String(),
			"explorer", res.ExplorerURL,
		)
	} else {
		lggr.Errorw("Operation failed",
			"operation", res.Operation,
			"kind", string(res.Kind),
			"error", res.Err,
		)
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Message())
}
