package prereq

import (
	"context"

	sollib "github.com/gagliardetto/solana-go"
	solrpc "github.com/gagliardetto/solana-go/rpc"

	cldsol "github.com/wba-cohort/solana-prereq/chain/solana"
)

// OpAirdrop names the airdrop operation in results and logs.
const OpAirdrop = "airdrop"

// AirdropRequester submits airdrop requests. It is satisfied by *rpc.Client and by
// *rpcclient.Client.
type AirdropRequester interface {
	RequestAirdrop(
		ctx context.Context,
		account sollib.PublicKey,
		lamports uint64,
		commitment solrpc.CommitmentType,
	) (sollib.Signature, error)
}

// AirdropRequest describes an airdrop.
type AirdropRequest struct {
	// Recipient is credited with the airdropped lamports.
	Recipient sollib.PublicKey
	// Lamports is the amount to request.
	Lamports uint64
	// Commitment the cluster uses to answer the request. Defaults to confirmed.
	Commitment solrpc.CommitmentType
	// Cluster determines the explorer link of the result.
	Cluster cldsol.Cluster
	// RPCURL is only used for localnet explorer links.
	RPCURL string
}

// RequestAirdrop asks the cluster to credit req.Lamports to req.Recipient. The request is sent
// once and the signature is reported without waiting for confirmation.
func RequestAirdrop(ctx context.Context, client AirdropRequester, req AirdropRequest) Result {
	if req.Lamports == 0 {
		return invalid(OpAirdrop, "airdrop amount must be greater than zero")
	}
	if req.Recipient.IsZero() {
		return invalid(OpAirdrop, "airdrop recipient is required")
	}

	commitment := req.Commitment
	if commitment == "" {
		commitment = cldsol.SolDefaultCommitment
	}

	sig, err := client.RequestAirdrop(ctx, req.Recipient, req.Lamports, commitment)
	if err != nil {
		return failure(OpAirdrop, sollib.Signature{}, err)
	}

	return Result{
		Operation:   OpAirdrop,
		Signature:   sig,
		ExplorerURL: req.Cluster.ExplorerTxURL(sig.String(), req.RPCURL),
	}
}
