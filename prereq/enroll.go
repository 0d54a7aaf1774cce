package prereq

import (
	"context"

	sollib "github.com/gagliardetto/solana-go"

	cldsol "github.com/wba-cohort/solana-prereq/chain/solana"
	"github.com/wba-cohort/solana-prereq/chain/solana/provider/rpcclient"
)

// OpEnroll names the enrollment operation in results and logs.
const OpEnroll = "enroll"

// TransactionSender signs, submits and confirms transactions. It is satisfied by
// *rpcclient.Client.
type TransactionSender interface {
	SendAndConfirmTx(
		ctx context.Context,
		instructions []sollib.Instruction,
		opts ...rpcclient.SendOpt,
	) (sollib.Signature, error)
}

// EnrollRequest describes an enrollment.
type EnrollRequest struct {
	// Signer is the public address of the key pair the sender signs with.
	Signer sollib.PublicKey
	// ProgramID is the address of the prereq program.
	ProgramID sollib.PublicKey
	// Seed is the literal seed of the enrollment account. Defaults to EnrollmentSeed.
	Seed []byte
	// Github is the handle recorded in the enrollment account.
	Github []byte
	// Cluster determines the explorer link of the result.
	Cluster cldsol.Cluster
	// RPCURL is only used for localnet explorer links.
	RPCURL string
}

// Enrollment is the instruction an EnrollRequest resolves to.
type Enrollment struct {
	Address     sollib.PublicKey
	Bump        uint8
	Instruction sollib.Instruction
}

// BuildEnrollment derives the enrollment account and builds the "complete" instruction for req
// without touching the network.
func BuildEnrollment(req EnrollRequest) (Enrollment, error) {
	seed := req.Seed
	if len(seed) == 0 {
		seed = []byte(EnrollmentSeed)
	}

	addr, bump, err := DeriveEnrollmentAddress(seed, req.Signer, req.ProgramID)
	if err != nil {
		return Enrollment{}, err
	}

	ix, err := NewCompleteInstruction(req.ProgramID, req.Signer, addr, CompleteArgs{Github: req.Github})
	if err != nil {
		return Enrollment{}, err
	}

	return Enrollment{Address: addr, Bump: bump, Instruction: ix}, nil
}

// Enroll submits the "complete" instruction for req in a single transaction signed by the
// sender. The program rejects a second enrollment for the same signer because the enrollment
// account already exists; that is reported as a rejected Result.
func Enroll(ctx context.Context, sender TransactionSender, req EnrollRequest, opts ...rpcclient.SendOpt) Result {
	switch {
	case len(req.Github) == 0:
		return invalid(OpEnroll, "github handle is required")
	case req.Signer.IsZero():
		return invalid(OpEnroll, "signer is required")
	case req.ProgramID.IsZero():
		return invalid(OpEnroll, "program id is required")
	}

	enrollment, err := BuildEnrollment(req)
	if err != nil {
		return failure(OpEnroll, sollib.Signature{}, err)
	}

	sig, err := sender.SendAndConfirmTx(ctx, []sollib.Instruction{enrollment.Instruction}, opts...)
	if err != nil {
		return failure(OpEnroll, sig, err)
	}

	return Result{
		Operation:   OpEnroll,
		Signature:   sig,
		ExplorerURL: req.Cluster.ExplorerTxURL(sig.String(), req.RPCURL),
	}
}
