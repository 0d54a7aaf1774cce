package provider

import (
	"os"
	"path/filepath"
	"testing"

	sollib "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wba-cohort/solana-prereq/chain/solana"
)

func Test_PrivateKeyFromRaw(t *testing.T) {
	t.Parallel()

	// Generate a random private key for testing
	privateKey, err := sollib.NewRandomPrivateKey()
	require.NoError(t, err)

	tests := []struct {
		name           string
		givePrivateKey string
		wantErr        string
	}{
		{
			name:           "valid private key",
			givePrivateKey: privateKey.String(),
		},
		{
			name:           "invalid private key",
			givePrivateKey: "invalid_private_key",
			wantErr:        "failed to parse private key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := PrivateKeyFromRaw(tt.givePrivateKey)
			got, err := gen.Generate()

			if tt.wantErr != "" {
				require.Error(t, err)
				require.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, got)
				assert.Equal(t, tt.givePrivateKey, got.String())
			}
		})
	}
}

func Test_PrivateKeyFromFile(t *testing.T) {
	t.Parallel()

	privateKey, err := sollib.NewRandomPrivateKey()
	require.NoError(t, err)

	dir := t.TempDir()
	validPath := filepath.Join(dir, "wba-wallet.json")
	require.NoError(t, solana.WriteKeypairFile(validPath, privateKey))

	garbagePath := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbagePath, []byte("{}"), 0600))

	tests := []struct {
		name     string
		givePath string
		wantErr  string
	}{
		{
			name:     "valid wallet file",
			givePath: validPath,
		},
		{
			name:     "missing wallet file",
			givePath: filepath.Join(dir, "missing.json"),
			wantErr:  "failed to load private key: failed to read wallet file",
		},
		{
			name:     "malformed wallet file",
			givePath: garbagePath,
			wantErr:  "expected a JSON array of bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := PrivateKeyFromFile(tt.givePath).Generate()
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, privateKey.PublicKey(), got.PublicKey())
			}
		})
	}
}

func Test_PrivateKeyRandom(t *testing.T) {
	t.Parallel()

	got, err := PrivateKeyRandom().Generate()
	require.NoError(t, err)
	assert.NotEmpty(t, got.String())
	assert.True(t, got.IsValid())
}

func Test_WalletKeyGen(t *testing.T) {
	t.Parallel()

	privateKey, err := sollib.NewRandomPrivateKey()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "wallet.json")
	require.NoError(t, solana.WriteKeypairFile(path, privateKey))

	// the raw key wins over the file
	other, err := sollib.NewRandomPrivateKey()
	require.NoError(t, err)

	got, err := WalletKeyGen(path, other.String()).Generate()
	require.NoError(t, err)
	assert.Equal(t, other, got)

	got, err = WalletKeyGen(path, "").Generate()
	require.NoError(t, err)
	assert.Equal(t, privateKey, got)
}
