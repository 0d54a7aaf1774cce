// Package airdrop provides the CLI command that requests a devnet airdrop.
package airdrop

import (
	cldsol "github.com/wba-cohort/solana-prereq/chain/solana"
	"github.com/wba-cohort/solana-prereq/chain/solana/provider"
	"github.com/wba-cohort/solana-prereq/pkg/commands/cmdutil"
	"github.com/wba-cohort/solana-prereq/prereq"
)

// AirdropClientFunc returns the client that submits the airdrop request for chain.
type AirdropClientFunc func(chain *cldsol.Chain) prereq.AirdropRequester

// defaultAirdropClient is the production implementation that requests through the chain's RPC
// client.
func defaultAirdropClient(chain *cldsol.Chain) prereq.AirdropRequester {
	return chain.Client
}

// Deps holds the injectable dependencies for the airdrop command.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// ChainLoader connects to the cluster with the wallet.
	// Default: provider.LoadChain
	ChainLoader cmdutil.ChainLoaderFunc

	// AirdropClient returns the client used for the request.
	// Default: the chain's RPC client
	AirdropClient AirdropClientFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.ChainLoader == nil {
		d.ChainLoader = provider.LoadChain
	}
	if d.AirdropClient == nil {
		d.AirdropClient = defaultAirdropClient
	}
}
