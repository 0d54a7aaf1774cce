// Package wallet provides the CLI commands that create and convert wallet files.
package wallet

import (
	sollib "github.com/gagliardetto/solana-go"

	"github.com/wba-cohort/solana-prereq/chain/solana/provider"
)

// KeyGeneratorFunc creates a new key pair.
type KeyGeneratorFunc func() (sollib.PrivateKey, error)

// defaultKeyGenerator is the production implementation that creates a random key pair.
func defaultKeyGenerator() (sollib.PrivateKey, error) {
	return provider.PrivateKeyRandom().Generate()
}

// Deps holds the injectable dependencies for wallet commands.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// KeyGenerator creates the key pair of "wallet new".
	// Default: a random key pair
	KeyGenerator KeyGeneratorFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.KeyGenerator == nil {
		d.KeyGenerator = defaultKeyGenerator
	}
}
