package prereq_test

import (
	"crypto/rand"
	"testing"

	sollib "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func randomSignature(t *testing.T) sollib.Signature {
	t.Helper()

	var sig sollib.Signature
	_, err := rand.Read(sig[:])
	require.NoError(t, err)

	return sig
}

func randomAddress(t *testing.T) sollib.PublicKey {
	t.Helper()

	key, err := sollib.NewRandomPrivateKey()
	require.NoError(t, err)

	return key.PublicKey()
}
