package provider

import (
	"errors"
	"fmt"
	"net/url"

	solrpc "github.com/gagliardetto/solana-go/rpc"

	"github.com/wba-cohort/solana-prereq/chain/solana"
	"github.com/wba-cohort/solana-prereq/chain/solana/provider/rpcclient"
)

// RPCChainProviderConfig holds the configuration to initialize the RPCChainProvider.
type RPCChainProviderConfig struct {
	// Optional: The HTTP RPC URL to connect to the Solana node. Defaults to the public endpoint
	// of the cluster.
	HTTPURL string
	// Required: A generator for the signer key. Use PrivateKeyFromFile to load a wallet file.
	SignerKeyGen PrivateKeyGenerator
}

// validate checks if the RPCChainProviderConfig is valid.
func (c RPCChainProviderConfig) validate() error {
	if c.HTTPURL == "" {
		return errors.New("http url is required")
	}
	if _, err := url.ParseRequestURI(c.HTTPURL); err != nil {
		return fmt.Errorf("invalid http url: %w", err)
	}
	if c.SignerKeyGen == nil {
		return errors.New("signer key generator is required")
	}

	return nil
}

// RPCChainProvider is a chain provider that provides a chain that connects to a Solana node via
// RPC.
type RPCChainProvider struct {
	// cluster the RPC endpoint belongs to, used for explorer links and chain naming.
	cluster solana.Cluster

	// RPCChainProviderConfig holds the configuration for the RPCChainProvider.
	config RPCChainProviderConfig

	// chain is the Solana chain instance that this provider manages. The Initialize method
	// sets up the chain.
	chain *solana.Chain
}

// NewRPCChainProvider creates a provider for the cluster. An empty HTTPURL in the config is
// replaced with the cluster's public endpoint.
func NewRPCChainProvider(cluster solana.Cluster, config RPCChainProviderConfig) *RPCChainProvider {
	if config.HTTPURL == "" {
		config.HTTPURL = cluster.RPCURL()
	}

	return &RPCChainProvider{
		cluster: cluster,
		config:  config,
	}
}

// Initialize initializes the RPCChainProvider. It loads the signer keypair from the provided
// configuration and sets up the Solana client with the HTTP RPC URL. It returns the initialized
// Solana chain instance.
func (p *RPCChainProvider) Initialize() (*solana.Chain, error) {
	if p.chain != nil {
		return p.chain, nil // Already initialized
	}

	// Validate the provider configuration
	if err := p.config.validate(); err != nil {
		return nil, fmt.Errorf("failed to validate provider config: %w", err)
	}

	privKey, err := p.config.SignerKeyGen.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate signer keypair: %w", err)
	}

	client := rpcclient.New(solrpc.New(p.config.HTTPURL), privKey)

	p.chain = &solana.Chain{
		Cluster: p.cluster,
		Client:  client,
		URL:     p.config.HTTPURL,
		Signer:  privKey,
	}

	return p.chain, nil
}

// Name returns the name of the RPCChainProvider.
func (*RPCChainProvider) Name() string {
	return "Solana RPC Chain Provider"
}

// Cluster returns the cluster of the chain managed by this provider.
func (p *RPCChainProvider) Cluster() solana.Cluster {
	return p.cluster
}

// BlockChain returns the Solana chain instance managed by this provider. You must call
// Initialize before using this method to ensure the chain is properly set up.
func (p *RPCChainProvider) BlockChain() *solana.Chain {
	return p.chain
}

// LoadChain initializes a chain for the cluster served at rpcURL, signing with the key produced
// by keyGen.
func LoadChain(cluster solana.Cluster, rpcURL string, keyGen PrivateKeyGenerator) (*solana.Chain, error) {
	return NewRPCChainProvider(cluster, RPCChainProviderConfig{
		HTTPURL:      rpcURL,
		SignerKeyGen: keyGen,
	}).Initialize()
}
