package config

import (
	"os"
	"testing"
	"time"

	solrpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	cldsol "github.com/wba-cohort/solana-prereq/chain/solana"
)

var (
	// fileCfg is the config that is loaded from the testdata/config.yml file.
	fileCfg = &Config{
		Cluster:    "localnet",
		RPCURL:     "http://127.0.0.1:8899",
		Commitment: "finalized",
		Timeout:    90 * time.Second,
		LogLevel:   "debug",
		Airdrop: AirdropConfig{
			WalletPath: "./keys/dev.json",
			Lamports:   1_000_000_000,
		},
		Enroll: EnrollConfig{
			WalletPath:       "./keys/enroll.json",
			ProgramID:        "HC2oqz2p6DEWfrahenqdq2moUcga9c9biqRBcdK3XKU1",
			Seed:             "prereq",
			Github:           "octocat",
			ComputeUnitPrice: 1000,
			ComputeUnitLimit: 200_000,
		},
		Transfer: TransferConfig{
			WalletPath:       "./keys/dev.json",
			Recipient:        "SeseaYWQAV5m257VVmCPpNTenjLE9q4oHoSN8wYSwtB",
			Lamports:         100_000_000,
			ComputeUnitPrice: 500,
		},
	}

	// defaultCfg is the config made of the defaults only.
	defaultCfg = &Config{
		Cluster:    "devnet",
		Commitment: "confirmed",
		Timeout:    time.Minute,
		LogLevel:   "info",
		Airdrop: AirdropConfig{
			WalletPath: "dev-wallet.json",
			Lamports:   2_000_000_000,
		},
		Enroll: EnrollConfig{
			WalletPath: "wba-wallet.json",
			ProgramID:  "HC2oqz2p6DEWfrahenqdq2moUcga9c9biqRBcdK3XKU1",
			Seed:       "prereq",
			Github:     "MinhNguyen",
		},
		Transfer: TransferConfig{
			WalletPath: "dev-wallet.json",
			Recipient:  "SeseaYWQAV5m257VVmCPpNTenjLE9q4oHoSN8wYSwtB",
		},
	}

	// envVars is the environment variables that used to set the config.
	envVars = map[string]string{
		"PREREQ_CLUSTER":                     "testnet",
		"PREREQ_RPC_URL":                     "https://rpc.example.com",
		"PREREQ_COMMITMENT":                  "processed",
		"PREREQ_TIMEOUT":                     "5s",
		"PREREQ_LOG_LEVEL":                   "warn",
		"PREREQ_AIRDROP_WALLET_PATH":         "a.json",
		"PREREQ_AIRDROP_WALLET_KEY":          "airdropkey",
		"PREREQ_AIRDROP_LAMPORTS":            "42",
		"PREREQ_ENROLL_WALLET_PATH":          "b.json",
		"PREREQ_ENROLL_WALLET_KEY":           "enrollkey",
		"PREREQ_ENROLL_PROGRAM_ID":           "11111111111111111111111111111111",
		"PREREQ_ENROLL_SEED":                 "seed",
		"PREREQ_ENROLL_GITHUB":               "gopher",
		"PREREQ_ENROLL_COMPUTE_UNIT_PRICE":   "7",
		"PREREQ_ENROLL_COMPUTE_UNIT_LIMIT":   "8",
		"PREREQ_TRANSFER_WALLET_PATH":        "c.json",
		"PREREQ_TRANSFER_WALLET_KEY":         "transferkey",
		"PREREQ_TRANSFER_RECIPIENT":          "11111111111111111111111111111111",
		"PREREQ_TRANSFER_LAMPORTS":           "9",
		"PREREQ_TRANSFER_COMPUTE_UNIT_PRICE": "10",
	}

	// envCfg is the config that is loaded from the environment variables.
	envCfg = &Config{
		Cluster:    "testnet",
		RPCURL:     "https://rpc.example.com",
		Commitment: "processed",
		Timeout:    5 * time.Second,
		LogLevel:   "warn",
		Airdrop: AirdropConfig{
			WalletPath: "a.json",
			WalletKey:  "airdropkey",
			Lamports:   42,
		},
		Enroll: EnrollConfig{
			WalletPath:       "b.json",
			WalletKey:        "enrollkey",
			ProgramID:        "11111111111111111111111111111111",
			Seed:             "seed",
			Github:           "gopher",
			ComputeUnitPrice: 7,
			ComputeUnitLimit: 8,
		},
		Transfer: TransferConfig{
			WalletPath:       "c.json",
			WalletKey:        "transferkey",
			Recipient:        "11111111111111111111111111111111",
			Lamports:         9,
			ComputeUnitPrice: 10,
		},
	}
)

func Test_Load(t *testing.T) { //nolint:paralleltest // see comment in setupEnvVars
	tests := []struct {
		name       string
		beforeFunc func(t *testing.T)
		givePath   string
		want       *Config
		wantErr    string
	}{
		{
			name:     "load from file",
			givePath: "./testdata/config.yml",
			want:     fileCfg,
		},
		{
			name:     "load from empty file falls back to defaults",
			givePath: "./testdata/empty.yml",
			want:     defaultCfg,
		},
		{
			name: "override with env",
			beforeFunc: func(t *testing.T) {
				t.Helper()

				setupEnvVars(t, envVars)
			},
			givePath: "./testdata/config.yml",
			want:     envCfg,
		},
		{
			name: "fallback to env when file not found",
			beforeFunc: func(t *testing.T) {
				t.Helper()

				setupEnvVars(t, envVars)
			},
			givePath: "./testdata/invalid.yml",
			want:     envCfg,
		},
		{
			name: "legacy variable names",
			beforeFunc: func(t *testing.T) {
				t.Helper()

				setupEnvVars(t, map[string]string{
					"SOLANA_CLUSTER":    "mainnet-beta",
					"SOLANA_RPC_URL":    "https://rpc.example.com",
					"SOLANA_WALLET_KEY": "enrollkey",
					"GITHUB_USER":       "gopher",
				})
			},
			givePath: "./testdata/invalid.yml",
			want: func() *Config {
				cfg := *defaultCfg
				cfg.Cluster = "mainnet-beta"
				cfg.RPCURL = "https://rpc.example.com"
				cfg.Enroll.WalletKey = "enrollkey"
				cfg.Enroll.Github = "gopher"

				return &cfg
			}(),
		},
	}

	for _, tt := range tests { //nolint:paralleltest // see comment in setupEnvVars
		t.Run(tt.name, func(t *testing.T) {
			if tt.beforeFunc != nil {
				tt.beforeFunc(t)
			}

			got, err := Load(tt.givePath)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_LoadFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		givePath string
		want     *Config
		wantErr  string
	}{
		{
			name:     "load from file",
			givePath: "./testdata/config.yml",
			want:     fileCfg,
		},
		{
			name:     "load from file with invalid path",
			givePath: "./testdata/invalid.yml",
			wantErr:  "no such file or directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadFile(tt.givePath)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_LoadEnv(t *testing.T) { //nolint:paralleltest // see comment in setupEnvVars
	setupEnvVars(t, envVars)

	got, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, envCfg, got)
}

func Test_Default(t *testing.T) {
	t.Parallel()

	assert.Equal(t, defaultCfg, Default())
}

func Test_YAML_Marshal_Unmarshal(t *testing.T) {
	t.Parallel()

	yamlCfg, err := os.ReadFile("./testdata/config.yml")
	require.NoError(t, err)

	var cfg Config
	err = yaml.Unmarshal(yamlCfg, &cfg)
	require.NoError(t, err)

	assert.Equal(t, *fileCfg, cfg)

	b, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	assert.YAMLEq(t, string(yamlCfg), string(b))
}

func Test_Config_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveMutate func(c *Config)
		wantErr    string
	}{
		{
			name:       "defaults are valid",
			giveMutate: func(*Config) {},
		},
		{
			name:       "unknown cluster",
			giveMutate: func(c *Config) { c.Cluster = "moonnet" },
			wantErr:    `unknown solana cluster: "moonnet"`,
		},
		{
			name:       "unknown commitment",
			giveMutate: func(c *Config) { c.Commitment = "recent" },
			wantErr:    `unsupported commitment: "recent"`,
		},
		{
			name:       "zero timeout",
			giveMutate: func(c *Config) { c.Timeout = 0 },
			wantErr:    "timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.giveMutate(cfg)

			err := cfg.Validate()
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func Test_Config_Endpoint(t *testing.T) {
	t.Parallel()

	cfg := Default()
	got, err := cfg.Endpoint()
	require.NoError(t, err)
	assert.Equal(t, "https://api.devnet.solana.com", got)

	cfg.Cluster = "testnet"
	got, err = cfg.Endpoint()
	require.NoError(t, err)
	assert.Equal(t, cldsol.ClusterTestnet.RPCURL(), got)

	cfg.RPCURL = "http://localhost:8899"
	got, err = cfg.Endpoint()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8899", got)

	assert.Equal(t, solrpc.CommitmentConfirmed, cfg.CommitmentType())
}

// setupEnvVars sets up the environment variables for the test.
//
// CAUTION: Because this function uses t.Setenv which affects the entire process, tests which call
// this function cannot be run in parallel.
func setupEnvVars(t *testing.T, envVars map[string]string) {
	t.Helper()

	for key, value := range envVars {
		t.Setenv(key, value)
	}
}
