// Package config loads the prereq configuration from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	solrpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/viper"

	cldsol "github.com/wba-cohort/solana-prereq/chain/solana"
)

// AirdropConfig is the configuration of the airdrop command.
//
// WARNING: This data type contains sensitive fields and should not be logged or set in file
// configuration.
type AirdropConfig struct {
	WalletPath string `mapstructure:"wallet_path" yaml:"wallet_path"`         // The path to the wallet file that receives the airdrop
	WalletKey  string `mapstructure:"wallet_key" yaml:"wallet_key,omitempty"` // Secret: base58 private key, used instead of the wallet file
	Lamports   uint64 `mapstructure:"lamports" yaml:"lamports"`               // The amount to request
}

// EnrollConfig is the configuration of the enroll command.
//
// WARNING: This data type contains sensitive fields and should not be logged or set in file
// configuration.
type EnrollConfig struct {
	WalletPath       string `mapstructure:"wallet_path" yaml:"wallet_path"`               // The path to the wallet file that signs the enrollment
	WalletKey        string `mapstructure:"wallet_key" yaml:"wallet_key,omitempty"`       // Secret: base58 private key, used instead of the wallet file
	ProgramID        string `mapstructure:"program_id" yaml:"program_id"`                 // The address of the prereq program
	Seed             string `mapstructure:"seed" yaml:"seed"`                             // The literal seed of the enrollment account
	Github           string `mapstructure:"github" yaml:"github"`                         // The github handle recorded by the enrollment
	ComputeUnitPrice uint64 `mapstructure:"compute_unit_price" yaml:"compute_unit_price"` // Priority fee in micro-lamports per compute unit, 0 to omit
	ComputeUnitLimit uint32 `mapstructure:"compute_unit_limit" yaml:"compute_unit_limit"` // Compute unit limit, 0 to omit
}

// TransferConfig is the configuration of the transfer command.
//
// WARNING: This data type contains sensitive fields and should not be logged or set in file
// configuration.
type TransferConfig struct {
	WalletPath       string `mapstructure:"wallet_path" yaml:"wallet_path"`               // The path to the wallet file the lamports are taken from
	WalletKey        string `mapstructure:"wallet_key" yaml:"wallet_key,omitempty"`       // Secret: base58 private key, used instead of the wallet file
	Recipient        string `mapstructure:"recipient" yaml:"recipient"`                   // The address credited by the transfer
	Lamports         uint64 `mapstructure:"lamports" yaml:"lamports"`                     // The amount to transfer, 0 sweeps the whole balance
	ComputeUnitPrice uint64 `mapstructure:"compute_unit_price" yaml:"compute_unit_price"` // Priority fee in micro-lamports per compute unit, 0 to omit
}

// Config is the configuration of the prereq tooling.
type Config struct {
	Cluster    string         `mapstructure:"cluster" yaml:"cluster"`       // devnet, testnet, mainnet-beta or localnet
	RPCURL     string         `mapstructure:"rpc_url" yaml:"rpc_url"`       // Overrides the public endpoint of the cluster
	Commitment string         `mapstructure:"commitment" yaml:"commitment"` // processed, confirmed or finalized
	Timeout    time.Duration  `mapstructure:"timeout" yaml:"timeout"`       // Bounds each operation, including confirmation
	LogLevel   string         `mapstructure:"log_level" yaml:"log_level"`   // debug, info, warn or error
	Airdrop    AirdropConfig  `mapstructure:"airdrop" yaml:"airdrop"`
	Enroll     EnrollConfig   `mapstructure:"enroll" yaml:"enroll"`
	Transfer   TransferConfig `mapstructure:"transfer" yaml:"transfer"`
}

// SolanaCluster parses the configured cluster.
func (c *Config) SolanaCluster() (cldsol.Cluster, error) {
	return cldsol.ParseCluster(c.Cluster)
}

// Endpoint returns the configured RPC URL, or the public endpoint of the cluster when none is
// set.
func (c *Config) Endpoint() (string, error) {
	if c.RPCURL != "" {
		return c.RPCURL, nil
	}

	cluster, err := c.SolanaCluster()
	if err != nil {
		return "", err
	}

	return cluster.RPCURL(), nil
}

// CommitmentType returns the configured commitment level.
func (c *Config) CommitmentType() solrpc.CommitmentType {
	return solrpc.CommitmentType(c.Commitment)
}

// Validate checks the fields shared by all commands.
func (c *Config) Validate() error {
	if _, err := c.SolanaCluster(); err != nil {
		return err
	}

	switch c.CommitmentType() {
	case solrpc.CommitmentProcessed, solrpc.CommitmentConfirmed, solrpc.CommitmentFinalized:
	default:
		return fmt.Errorf("unsupported commitment: %q", c.Commitment)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	return nil
}

// Load loads the config from the file path, overriding with environment variables. When the file
// does not exist, only the defaults and the environment are used.
func Load(filePath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(filePath)

	// Bind environment variables
	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	// If the config file exists, we continue to read it, otherwise we fallback to using
	// environment variables
	if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)

	return cfg, err
}

// LoadEnv loads the config from the defaults and the environment variables.
func LoadEnv() (*Config, error) {
	v := newViper()

	// Bind environment variables
	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)

	return cfg, err
}

// LoadFile loads the config from the defaults and a file.
func LoadFile(filePath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)

	return cfg, err
}

// Default returns the config made of the defaults only.
func Default() *Config {
	cfg := &Config{}
	// decoding the typed defaults into the struct cannot fail
	_ = newViper().Unmarshal(cfg)

	return cfg
}

var (
	// defaults holds the value of every key when neither the file nor the environment sets it.
	defaults = map[string]any{
		"cluster":                     string(cldsol.ClusterDevnet),
		"rpc_url":                     "",
		"commitment":                  string(solrpc.CommitmentConfirmed),
		"timeout":                     "60s",
		"log_level":                   "info",
		"airdrop.wallet_path":         "dev-wallet.json",
		"airdrop.wallet_key":          "",
		"airdrop.lamports":            uint64(2_000_000_000),
		"enroll.wallet_path":          "wba-wallet.json",
		"enroll.wallet_key":           "",
		"enroll.program_id":           "HC2oqz2p6DEWfrahenqdq2moUcga9c9biqRBcdK3XKU1",
		"enroll.seed":                 "prereq",
		"enroll.github":               "MinhNguyen",
		"enroll.compute_unit_price":   uint64(0),
		"enroll.compute_unit_limit":   uint32(0),
		"transfer.wallet_path":        "dev-wallet.json",
		"transfer.wallet_key":         "",
		"transfer.recipient":          "SeseaYWQAV5m257VVmCPpNTenjLE9q4oHoSN8wYSwtB",
		"transfer.lamports":           uint64(0),
		"transfer.compute_unit_price": uint64(0),
	}

	// envBindings defines how environment variables map to configuration keys used by Viper.
	// Each entry maps a config key (as used in the struct, e.g. "enroll.github") to a list of
	// environment variable names that can provide its value.
	//
	// The first element in the list is the preferred environment variable name, and the second
	// (if present) is the name the Solana tooling commonly uses for the same value.
	//
	// When loading, Viper will check each listed environment variable in order and use the first one
	// that is set.
	envBindings = map[string][]string{
		"cluster":                     {"PREREQ_CLUSTER", "SOLANA_CLUSTER"},
		"rpc_url":                     {"PREREQ_RPC_URL", "SOLANA_RPC_URL"},
		"commitment":                  {"PREREQ_COMMITMENT"},
		"timeout":                     {"PREREQ_TIMEOUT"},
		"log_level":                   {"PREREQ_LOG_LEVEL", "LOG_LEVEL"},
		"airdrop.wallet_path":         {"PREREQ_AIRDROP_WALLET_PATH"},
		"airdrop.wallet_key":          {"PREREQ_AIRDROP_WALLET_KEY"},
		"airdrop.lamports":            {"PREREQ_AIRDROP_LAMPORTS"},
		"enroll.wallet_path":          {"PREREQ_ENROLL_WALLET_PATH"},
		"enroll.wallet_key":           {"PREREQ_ENROLL_WALLET_KEY", "SOLANA_WALLET_KEY"},
		"enroll.program_id":           {"PREREQ_ENROLL_PROGRAM_ID"},
		"enroll.seed":                 {"PREREQ_ENROLL_SEED"},
		"enroll.github":               {"PREREQ_ENROLL_GITHUB", "GITHUB_USER"},
		"enroll.compute_unit_price":   {"PREREQ_ENROLL_COMPUTE_UNIT_PRICE"},
		"enroll.compute_unit_limit":   {"PREREQ_ENROLL_COMPUTE_UNIT_LIMIT"},
		"transfer.wallet_path":        {"PREREQ_TRANSFER_WALLET_PATH"},
		"transfer.wallet_key":         {"PREREQ_TRANSFER_WALLET_KEY"},
		"transfer.recipient":          {"PREREQ_TRANSFER_RECIPIENT"},
		"transfer.lamports":           {"PREREQ_TRANSFER_LAMPORTS"},
		"transfer.compute_unit_price": {"PREREQ_TRANSFER_COMPUTE_UNIT_PRICE"},
	}
)

// newViper returns a viper instance carrying the defaults.
func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return v
}

// bindEnvs binds the environment variables to the viper instance.
func bindEnvs(v *viper.Viper) error {
	// Bind environment variables mappings to the viper instance
	for key, envs := range envBindings {
		// Prepend the env key to the start of the arguments
		inputs := slices.Insert(slices.Clone(envs), 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}
