package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	sollib "github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// ErrInvalidKeypair is returned when key material does not form a valid ed25519 key pair.
var ErrInvalidKeypair = errors.New("invalid keypair")

// ReadKeypairFile reads a key pair from a wallet file in the solana-keygen format: a JSON array
// of the 64 secret key bytes.
func ReadKeypairFile(path string) (sollib.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet file: %w", err)
	}

	key, err := ParseKeypairJSON(b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse wallet file %s: %w", path, err)
	}

	return key, nil
}

// ParseKeypairJSON parses a JSON array of integers into a private key.
func ParseKeypairJSON(b []byte) (sollib.PrivateKey, error) {
	var ints []int
	if err := json.Unmarshal(bytes.TrimSpace(b), &ints); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of bytes: %w", ErrInvalidKeypair, err)
	}

	raw := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: value %d at index %d is not a byte", ErrInvalidKeypair, v, i)
		}
		raw[i] = byte(v)
	}

	return keypairFromBytes(raw)
}

// KeypairFromBase58 decodes a base58 encoded secret key, as exported by browser wallets.
func KeypairFromBase58(s string) (sollib.PrivateKey, error) {
	raw, err := base58.Decode(string(bytes.TrimSpace([]byte(s))))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeypair, err)
	}

	return keypairFromBytes(raw)
}

// KeypairJSON encodes the private key in the wallet file format. The private key is stored as
// an array of integers, where each integer represents a byte of the private key.
func KeypairJSON(privKey sollib.PrivateKey) ([]byte, error) {
	privKeyInts := make([]int, len(privKey))
	for i, b := range privKey {
		privKeyInts[i] = int(b)
	}

	return json.Marshal(privKeyInts)
}

// WriteKeypairFile writes the private key to path in the wallet file format, readable only by
// the current user.
func WriteKeypairFile(path string, privKey sollib.PrivateKey) error {
	privKeyJSON, err := KeypairJSON(privKey)
	if err != nil {
		return err
	}

	if err = os.WriteFile(path, privKeyJSON, 0600); err != nil {
		return fmt.Errorf("failed to write keypair to file: %w", err)
	}

	return nil
}

// keypairFromBytes checks that raw is a 64 byte ed25519 secret key whose trailing half is the
// public key derived from its seed.
func keypairFromBytes(raw []byte) (sollib.PrivateKey, error) {
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeypair, ed25519.PrivateKeySize, len(raw))
	}

	derived := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !bytes.Equal(derived, raw) {
		return nil, fmt.Errorf("%w: public key does not match secret seed", ErrInvalidKeypair)
	}

	return sollib.PrivateKey(raw), nil
}
