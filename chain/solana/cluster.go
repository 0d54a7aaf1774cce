package solana

import (
	"fmt"
	"net/url"
	"strings"

	chain_selectors "github.com/smartcontractkit/chain-selectors"
)

// Cluster identifies a Solana cluster. The value is the name the explorer uses in its
// cluster query parameter.
type Cluster string

const (
	ClusterDevnet  Cluster = "devnet"
	ClusterTestnet Cluster = "testnet"
	ClusterMainnet Cluster = "mainnet-beta"
	ClusterLocal   Cluster = "localnet"
)

// ExplorerBaseURL is the base URL of the public Solana explorer.
const ExplorerBaseURL = "https://explorer.solana.com"

var clusterRPCURLs = map[Cluster]string{
	ClusterDevnet:  "https://api.devnet.solana.com",
	ClusterTestnet: "https://api.testnet.solana.com",
	ClusterMainnet: "https://api.mainnet-beta.solana.com",
	ClusterLocal:   "http://127.0.0.1:8899",
}

// ParseCluster parses a cluster name. "mainnet" is accepted as an alias of "mainnet-beta" and
// "localhost" as an alias of "localnet".
func ParseCluster(s string) (Cluster, error) {
	switch c := Cluster(strings.ToLower(strings.TrimSpace(s))); c {
	case ClusterDevnet, ClusterTestnet, ClusterMainnet, ClusterLocal:
		return c, nil
	case "mainnet":
		return ClusterMainnet, nil
	case "localhost":
		return ClusterLocal, nil
	default:
		return "", fmt.Errorf("unknown solana cluster: %q", s)
	}
}

// String returns the cluster name.
func (c Cluster) String() string {
	return string(c)
}

// RPCURL returns the public RPC endpoint of the cluster.
func (c Cluster) RPCURL() string {
	return clusterRPCURLs[c]
}

// ExplorerTxURL returns the explorer link for a transaction identifier. The identifier is not
// parsed or validated.
//
// For localnet the explorer needs the RPC endpoint to query, which is taken from rpcURL (or the
// default local endpoint when empty).
func (c Cluster) ExplorerTxURL(txID string, rpcURL ...string) string {
	base := ExplorerBaseURL + "/tx/" + txID

	switch c {
	case ClusterMainnet:
		return base
	case ClusterLocal:
		custom := c.RPCURL()
		if len(rpcURL) > 0 && rpcURL[0] != "" {
			custom = rpcURL[0]
		}
		q := url.Values{}
		q.Set("cluster", "custom")
		q.Set("customUrl", custom)

		return base + "?" + q.Encode()
	default:
		return base + "?cluster=" + string(c)
	}
}

// Selector returns the chain selector of the cluster. Only clusters registered in
// chain-selectors have one.
func (c Cluster) Selector() (uint64, bool) {
	switch c {
	case ClusterDevnet:
		return chain_selectors.SOLANA_DEVNET.Selector, true
	case ClusterMainnet:
		return chain_selectors.SOLANA_MAINNET.Selector, true
	default:
		return 0, false
	}
}

// chainInfo returns the chain-selectors details for a Solana selector.
func chainInfo(selector uint64) (chain_selectors.ChainDetails, error) {
	id, err := chain_selectors.GetChainIDFromSelector(selector)
	if err != nil {
		return chain_selectors.ChainDetails{}, err
	}
	family, err := chain_selectors.GetSelectorFamily(selector)
	if err != nil {
		return chain_selectors.ChainDetails{}, err
	}
	if family != chain_selectors.FamilySolana {
		return chain_selectors.ChainDetails{}, fmt.Errorf("selector %d is not a solana chain: %s", selector, family)
	}

	return chain_selectors.GetChainDetailsByChainIDAndFamily(id, family)
}
