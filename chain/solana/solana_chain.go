package solana

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	solRpc "github.com/gagliardetto/solana-go/rpc"

	"github.com/wba-cohort/solana-prereq/chain/solana/provider/rpcclient"
)

// SolDefaultCommitment is the commitment used for preflight and confirmation unless configured
// otherwise.
const SolDefaultCommitment = solRpc.CommitmentConfirmed

// Chain represents a connection to a Solana cluster with the key pair that signs for it.
type Chain struct {
	Cluster Cluster

	// RPC client, signing with Signer
	Client *rpcclient.Client
	URL    string

	// Signer is loaded once at process start and never written back.
	Signer solana.PrivateKey
}

// Address returns the public address of the signer.
func (c Chain) Address() solana.PublicKey {
	return c.Signer.PublicKey()
}

// ExplorerTxURL returns the explorer link for a transaction on this chain.
func (c Chain) ExplorerTxURL(sig solana.Signature) string {
	return c.Cluster.ExplorerTxURL(sig.String(), c.URL)
}

// ChainSelector returns the chain selector of the chain, or 0 for clusters that have none.
func (c Chain) ChainSelector() uint64 {
	sel, _ := c.Cluster.Selector()

	return sel
}

// String returns chain name and selector "<name> (<selector>)", or the cluster name when the
// cluster has no selector.
func (c Chain) String() string {
	sel, ok := c.Cluster.Selector()
	if !ok {
		return c.Cluster.String()
	}
	info, err := chainInfo(sel)
	if err != nil {
		return c.Cluster.String()
	}

	return fmt.Sprintf("%s (%d)", info.ChainName, info.ChainSelector)
}

// Name returns the name of the chain
func (c Chain) Name() string {
	sel, ok := c.Cluster.Selector()
	if !ok {
		return c.Cluster.String()
	}
	info, err := chainInfo(sel)
	if err != nil {
		return c.Cluster.String()
	}
	if info.ChainName == "" {
		return strconv.FormatUint(sel, 10)
	}

	return info.ChainName
}
