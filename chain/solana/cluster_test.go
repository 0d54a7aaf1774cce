package solana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCluster(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    Cluster
		wantErr string
	}{
		{name: "devnet", give: "devnet", want: ClusterDevnet},
		{name: "testnet mixed case", give: " TestNet ", want: ClusterTestnet},
		{name: "mainnet-beta", give: "mainnet-beta", want: ClusterMainnet},
		{name: "mainnet alias", give: "mainnet", want: ClusterMainnet},
		{name: "localhost alias", give: "localhost", want: ClusterLocal},
		{name: "unknown", give: "moonnet", wantErr: `unknown solana cluster: "moonnet"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCluster(tt.give)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCluster_ExplorerTxURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveCl     Cluster
		giveTxID   string
		giveRPCURL []string
		want       string
	}{
		{
			name:     "devnet",
			giveCl:   ClusterDevnet,
			giveTxID: "TX123",
			want:     "https://explorer.solana.com/tx/TX123?cluster=devnet",
		},
		{
			name:     "testnet",
			giveCl:   ClusterTestnet,
			giveTxID: "TX123",
			want:     "https://explorer.solana.com/tx/TX123?cluster=testnet",
		},
		{
			name:     "mainnet has no cluster parameter",
			giveCl:   ClusterMainnet,
			giveTxID: "TX123",
			want:     "https://explorer.solana.com/tx/TX123",
		},
		{
			name:     "localnet default endpoint",
			giveCl:   ClusterLocal,
			giveTxID: "TX123",
			want:     "https://explorer.solana.com/tx/TX123?cluster=custom&customUrl=http%3A%2F%2F127.0.0.1%3A8899",
		},
		{
			name:       "localnet custom endpoint",
			giveCl:     ClusterLocal,
			giveTxID:   "TX123",
			giveRPCURL: []string{"http://validator:8899"},
			want:       "https://explorer.solana.com/tx/TX123?cluster=custom&customUrl=http%3A%2F%2Fvalidator%3A8899",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.giveCl.ExplorerTxURL(tt.giveTxID, tt.giveRPCURL...))
		})
	}
}

func TestCluster_RPCURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://api.devnet.solana.com", ClusterDevnet.RPCURL())
	assert.Equal(t, "http://127.0.0.1:8899", ClusterLocal.RPCURL())
	assert.Empty(t, Cluster("unknown").RPCURL())
}

func TestCluster_Selector(t *testing.T) {
	t.Parallel()

	sel, ok := ClusterDevnet.Selector()
	require.True(t, ok)

	info, err := chainInfo(sel)
	require.NoError(t, err)
	assert.Equal(t, sel, info.ChainSelector)

	_, ok = ClusterTestnet.Selector()
	assert.False(t, ok)
}
