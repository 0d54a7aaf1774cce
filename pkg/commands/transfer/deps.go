// Package transfer provides the CLI command that moves lamports between wallets.
package transfer

import (
	cldsol "github.com/wba-cohort/solana-prereq/chain/solana"
	"github.com/wba-cohort/solana-prereq/chain/solana/provider"
	"github.com/wba-cohort/solana-prereq/pkg/commands/cmdutil"
	"github.com/wba-cohort/solana-prereq/prereq"
)

// TransferClientFunc returns the client that reads the balance and sends the transfer for chain.
type TransferClientFunc func(chain *cldsol.Chain) prereq.TransferClient

// defaultTransferClient is the production implementation that uses the chain's RPC client.
func defaultTransferClient(chain *cldsol.Chain) prereq.TransferClient {
	return chain.Client
}

// Deps holds the injectable dependencies for the transfer command.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// ChainLoader connects to the cluster with the wallet.
	// Default: provider.LoadChain
	ChainLoader cmdutil.ChainLoaderFunc

	// TransferClient returns the client used for the transfer.
	// Default: the chain's RPC client
	TransferClient TransferClientFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.ChainLoader == nil {
		d.ChainLoader = provider.LoadChain
	}
	if d.TransferClient == nil {
		d.TransferClient = defaultTransferClient
	}
}
