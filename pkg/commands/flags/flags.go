// Package flags provides the flags shared by the prereq commands.
//
// Flags only override the loaded configuration when they are set on the command line, so their
// defaults are left empty and the help text names the configuration key instead.
package flags

import (
	"github.com/spf13/cobra"
)

// MustString returns the string value, ignoring the error.
// Safe to use with registered flags where GetString cannot fail.
func MustString(s string, _ error) string { return s }

// MustBool returns the bool value, ignoring the error.
// Safe to use with registered flags where GetBool cannot fail.
func MustBool(b bool, _ error) bool { return b }

// MustUint64 returns the uint64 value, ignoring the error.
// Safe to use with registered flags where GetUint64 cannot fail.
func MustUint64(v uint64, _ error) uint64 { return v }

// MustUint32 returns the uint32 value, ignoring the error.
// Safe to use with registered flags where GetUint32 cannot fail.
func MustUint32(v uint32, _ error) uint32 { return v }

// Wallet adds the --wallet/-w flag for the wallet file that signs for the command.
func Wallet(cmd *cobra.Command, configKey string) {
	cmd.Flags().StringP("wallet", "w", "", "Wallet file, a JSON array of the secret key bytes (default: "+configKey+")")
}

// Cluster adds the --cluster and --rpc-url flags.
func Cluster(cmd *cobra.Command) {
	cmd.Flags().String("cluster", "", "Cluster: devnet, testnet, mainnet-beta or localnet (default: cluster)")
	cmd.Flags().String("rpc-url", "", "RPC endpoint, defaults to the public endpoint of the cluster (default: rpc_url)")
}

// Lamports adds the --lamports flag.
func Lamports(cmd *cobra.Command, usage string) {
	cmd.Flags().Uint64("lamports", 0, usage)
}

// ComputeUnitPrice adds the --compute-unit-price flag.
func ComputeUnitPrice(cmd *cobra.Command, configKey string) {
	cmd.Flags().Uint64("compute-unit-price", 0, "Priority fee in micro-lamports per compute unit (default: "+configKey+")")
}

// Output adds the --out/-o flag for specifying output file path.
// Retrieve the value with cmd.Flags().GetString("out").
func Output(cmd *cobra.Command, defaultValue string) {
	cmd.Flags().StringP("out", "o", defaultValue, "Output file path")
}

// StringOr returns the value of the flag when it was set on the command line, otherwise
// fallback.
func StringOr(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}

	return MustString(cmd.Flags().GetString(name))
}

// Uint64Or returns the value of the flag when it was set on the command line, otherwise
// fallback.
func Uint64Or(cmd *cobra.Command, name string, fallback uint64) uint64 {
	if !cmd.Flags().Changed(name) {
		return fallback
	}

	return MustUint64(cmd.Flags().GetUint64(name))
}

// Uint32Or returns the value of the flag when it was set on the command line, otherwise
// fallback.
func Uint32Or(cmd *cobra.Command, name string, fallback uint32) uint32 {
	if !cmd.Flags().Changed(name) {
		return fallback
	}

	return MustUint32(cmd.Flags().GetUint32(name))
}
