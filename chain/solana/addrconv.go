package solana

import (
	"fmt"

	sollib "github.com/gagliardetto/solana-go"
)

// ParseAddress parses a base58 encoded Solana address. The kind names the address in the error,
// e.g. "program id" or "recipient".
func ParseAddress(kind, address string) (sollib.PublicKey, error) {
	pubkey, err := sollib.PublicKeyFromBase58(address)
	if err != nil {
		return sollib.PublicKey{}, fmt.Errorf("invalid %s address %q: %w", kind, address, err)
	}

	return pubkey, nil
}
