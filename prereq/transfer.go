package prereq

import (
	"context"
	"fmt"

	sollib "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	solrpc "github.com/gagliardetto/solana-go/rpc"

	cldsol "github.com/wba-cohort/solana-prereq/chain/solana"
	"github.com/wba-cohort/solana-prereq/chain/solana/provider/rpcclient"
)

// OpTransfer names the transfer operation in results and logs.
const OpTransfer = "transfer"

// TransferClient sends transfers and answers the balance and fee queries a sweep needs. It is
// satisfied by *rpcclient.Client.
type TransferClient interface {
	TransactionSender

	GetBalance(
		ctx context.Context,
		account sollib.PublicKey,
		commitment solrpc.CommitmentType,
	) (*solrpc.GetBalanceResult, error)
	EstimateFee(ctx context.Context, instructions []sollib.Instruction, opts ...rpcclient.SendOpt) (uint64, error)
}

// TransferRequest describes a transfer of lamports between two wallets.
type TransferRequest struct {
	// From is the public address of the key pair the client signs with.
	From sollib.PublicKey
	// To is credited with the transferred lamports.
	To sollib.PublicKey
	// Lamports is the amount to transfer. Zero sweeps the whole balance of From, less the
	// transaction fee.
	Lamports uint64
	// Cluster determines the explorer link of the result.
	Cluster cldsol.Cluster
	// RPCURL is only used for localnet explorer links.
	RPCURL string
}

// NewTransferInstruction builds a system program transfer.
func NewTransferInstruction(from, to sollib.PublicKey, lamports uint64) (sollib.Instruction, error) {
	ix, err := system.NewTransferInstruction(lamports, from, to).ValidateAndBuild()
	if err != nil {
		return nil, fmt.Errorf("failed to build transfer instruction: %w", err)
	}

	return ix, nil
}

// Transfer moves lamports from req.From to req.To in a single transaction. When req.Lamports is
// zero the balance of req.From is read and everything but the fee is moved, leaving the wallet
// empty.
func Transfer(ctx context.Context, client TransferClient, req TransferRequest, opts ...rpcclient.SendOpt) Result {
	switch {
	case req.From.IsZero():
		return invalid(OpTransfer, "sender is required")
	case req.To.IsZero():
		return invalid(OpTransfer, "recipient is required")
	case req.From.Equals(req.To):
		return invalid(OpTransfer, "sender and recipient are the same address %s", req.To)
	}

	amount := req.Lamports
	if amount == 0 {
		swept, res, ok := sweepAmount(ctx, client, req, opts...)
		if !ok {
			return res
		}
		amount = swept
	}

	ix, err := NewTransferInstruction(req.From, req.To, amount)
	if err != nil {
		return failure(OpTransfer, sollib.Signature{}, err)
	}

	sig, err := client.SendAndConfirmTx(ctx, []sollib.Instruction{ix}, opts...)
	if err != nil {
		return failure(OpTransfer, sig, err)
	}

	return Result{
		Operation:   OpTransfer,
		Signature:   sig,
		ExplorerURL: req.Cluster.ExplorerTxURL(sig.String(), req.RPCURL),
	}
}

// Sweep transfers the whole balance of req.From, less the fee, to req.To. req.Lamports is
// ignored.
func Sweep(ctx context.Context, client TransferClient, req TransferRequest, opts ...rpcclient.SendOpt) Result {
	req.Lamports = 0

	return Transfer(ctx, client, req, opts...)
}

// sweepAmount returns the balance of req.From less the fee of the transfer that moves it.
func sweepAmount(
	ctx context.Context,
	client TransferClient,
	req TransferRequest,
	opts ...rpcclient.SendOpt,
) (uint64, Result, bool) {
	balance, err := client.GetBalance(ctx, req.From, cldsol.SolDefaultCommitment)
	if err != nil {
		return 0, failure(OpTransfer, sollib.Signature{}, fmt.Errorf("failed to get balance of %s: %w", req.From, err)), false
	}

	// The fee does not depend on the amount, so the full balance stands in for it.
	probe, err := NewTransferInstruction(req.From, req.To, balance.Value)
	if err != nil {
		return 0, failure(OpTransfer, sollib.Signature{}, err), false
	}

	fee, err := client.EstimateFee(ctx, []sollib.Instruction{probe}, opts...)
	if err != nil {
		return 0, failure(OpTransfer, sollib.Signature{}, fmt.Errorf("failed to estimate fee: %w", err)), false
	}

	if balance.Value <= fee {
		return 0, invalid(OpTransfer, "balance of %d lamports does not cover the fee of %d lamports", balance.Value, fee), false
	}

	return balance.Value - fee, Result{}, true
}
