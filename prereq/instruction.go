package prereq

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	sollib "github.com/gagliardetto/solana-go"
)

// EnrollmentSeed is the literal seed the prereq program derives enrollment accounts from.
const EnrollmentSeed = "prereq"

// completeInstructionName is the prereq program method that records an enrollment.
const completeInstructionName = "complete"

// CompleteDiscriminator is the anchor discriminator of the "complete" instruction: the first 8
// bytes of sha256("global:complete").
var CompleteDiscriminator = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, completeInstructionName)

// CompleteArgs are the arguments of the "complete" instruction.
type CompleteArgs struct {
	// Github is the identifying handle recorded in the enrollment account.
	Github []byte
}

// MarshalWithEncoder writes the borsh encoding of the arguments: a little-endian u32 length
// followed by the raw bytes.
func (a CompleteArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint32(uint32(len(a.Github)), binary.LittleEndian); err != nil {
		return err
	}

	return encoder.WriteBytes(a.Github, false)
}

// DeriveEnrollmentAddress derives the enrollment account of owner: the program address of the
// seeds [seed, owner] under programID. It performs no I/O and always yields the same address
// for the same inputs.
func DeriveEnrollmentAddress(seed []byte, owner, programID sollib.PublicKey) (sollib.PublicKey, uint8, error) {
	addr, bump, err := sollib.FindProgramAddress([][]byte{seed, owner.Bytes()}, programID)
	if err != nil {
		return sollib.PublicKey{}, 0, fmt.Errorf("failed to derive enrollment address: %w", err)
	}

	return addr, bump, nil
}

// NewCompleteInstruction builds the "complete" instruction of the prereq program. The accounts
// are, in order: the signer (writable, signer, pays for the account), the enrollment account
// (writable) and the system program.
func NewCompleteInstruction(
	programID, signer, enrollment sollib.PublicKey,
	args CompleteArgs,
) (sollib.Instruction, error) {
	buf := new(bytes.Buffer)
	buf.Write(CompleteDiscriminator.Bytes())
	if err := args.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("failed to encode complete args: %w", err)
	}

	return sollib.NewInstruction(
		programID,
		sollib.AccountMetaSlice{
			sollib.Meta(signer).WRITE().SIGNER(),
			sollib.Meta(enrollment).WRITE(),
			sollib.Meta(sollib.SystemProgramID),
		},
		buf.Bytes(),
	), nil
}
