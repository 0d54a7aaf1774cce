// Package enroll provides the CLI command that records an enrollment with the prereq program.
package enroll

import (
	cldsol "github.com/wba-cohort/solana-prereq/chain/solana"
	"github.com/wba-cohort/solana-prereq/chain/solana/provider"
	"github.com/wba-cohort/solana-prereq/pkg/commands/cmdutil"
	"github.com/wba-cohort/solana-prereq/prereq"
)

// SenderFunc returns the sender that signs and submits the enrollment for chain.
type SenderFunc func(chain *cldsol.Chain) prereq.TransactionSender

// defaultSender is the production implementation that sends through the chain's RPC client.
func defaultSender(chain *cldsol.Chain) prereq.TransactionSender {
	return chain.Client
}

// Deps holds the injectable dependencies for the enroll command.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// ChainLoader connects to the cluster with the wallet.
	// Default: provider.LoadChain
	ChainLoader cmdutil.ChainLoaderFunc

	// Sender returns the transaction sender.
	// Default: the chain's RPC client
	Sender SenderFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.ChainLoader == nil {
		d.ChainLoader = provider.LoadChain
	}
	if d.Sender == nil {
		d.Sender = defaultSender
	}
}
