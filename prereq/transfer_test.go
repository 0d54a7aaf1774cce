package prereq_test

import (
	"bytes"
	"errors"
	"testing"

	sollib "github.com/gagliardetto/solana-go"
	solrpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cldsol "github.com/wba-cohort/solana-prereq/chain/solana"
	"github.com/wba-cohort/solana-prereq/prereq"
	"github.com/wba-cohort/solana-prereq/prereq/mocks"
)

// transferOf matches a single system transfer of lamports from one address to another.
func transferOf(t *testing.T, from, to sollib.PublicKey, lamports uint64) any {
	t.Helper()

	want, err := prereq.NewTransferInstruction(from, to, lamports)
	require.NoError(t, err)
	wantData, err := want.Data()
	require.NoError(t, err)

	return mock.MatchedBy(func(ixs []sollib.Instruction) bool {
		if len(ixs) != 1 || !ixs[0].ProgramID().Equals(sollib.SystemProgramID) {
			return false
		}
		data, err := ixs[0].Data()

		return err == nil && bytes.Equal(wantData, data)
	})
}

func balanceOf(lamports uint64) *solrpc.GetBalanceResult {
	return &solrpc.GetBalanceResult{Value: lamports}
}

func TestTransfer(t *testing.T) {
	t.Parallel()

	from := randomAddress(t)
	to := randomAddress(t)
	sig := randomSignature(t)

	tests := []struct {
		name           string
		giveReq        prereq.TransferRequest
		beforeFunc     func(t *testing.T, m *mocks.MockTransferClient)
		wantKind       prereq.ErrorKind
		wantMsgContain string
	}{
		{
			name: "fixed amount",
			giveReq: prereq.TransferRequest{
				From: from, To: to, Lamports: sollib.LAMPORTS_PER_SOL / 10, Cluster: cldsol.ClusterDevnet,
			},
			beforeFunc: func(t *testing.T, m *mocks.MockTransferClient) {
				t.Helper()

				m.On("SendAndConfirmTx", mock.Anything, transferOf(t, from, to, sollib.LAMPORTS_PER_SOL/10), mock.Anything).
					Return(sig, nil).Once()
			},
			wantMsgContain: sig.String() + "?cluster=devnet",
		},
		{
			name: "sweep moves the balance less the fee",
			giveReq: prereq.TransferRequest{
				From: from, To: to, Cluster: cldsol.ClusterDevnet,
			},
			beforeFunc: func(t *testing.T, m *mocks.MockTransferClient) {
				t.Helper()

				m.On("GetBalance", mock.Anything, from, solrpc.CommitmentConfirmed).Return(balanceOf(1_000_000), nil).Once()
				m.On("EstimateFee", mock.Anything, mock.Anything, mock.Anything).Return(uint64(5000), nil).Once()
				m.On("SendAndConfirmTx", mock.Anything, transferOf(t, from, to, 995_000), mock.Anything).
					Return(sig, nil).Once()
			},
			wantMsgContain: sig.String(),
		},
		{
			name: "sweep of a balance that does not cover the fee",
			giveReq: prereq.TransferRequest{
				From: from, To: to, Cluster: cldsol.ClusterDevnet,
			},
			beforeFunc: func(t *testing.T, m *mocks.MockTransferClient) {
				t.Helper()

				m.On("GetBalance", mock.Anything, from, solrpc.CommitmentConfirmed).Return(balanceOf(5000), nil).Once()
				m.On("EstimateFee", mock.Anything, mock.Anything, mock.Anything).Return(uint64(5000), nil).Once()
			},
			wantKind:       prereq.KindInvalidInput,
			wantMsgContain: "balance of 5000 lamports does not cover the fee of 5000 lamports",
		},
		{
			name: "balance lookup fails",
			giveReq: prereq.TransferRequest{
				From: from, To: to, Cluster: cldsol.ClusterDevnet,
			},
			beforeFunc: func(t *testing.T, m *mocks.MockTransferClient) {
				t.Helper()

				m.On("GetBalance", mock.Anything, from, solrpc.CommitmentConfirmed).Return(nil, errors.New("connection reset")).Once()
			},
			wantKind:       prereq.KindTransport,
			wantMsgContain: "failed to get balance of " + from.String(),
		},
		{
			name: "fee estimate fails",
			giveReq: prereq.TransferRequest{
				From: from, To: to, Cluster: cldsol.ClusterDevnet,
			},
			beforeFunc: func(t *testing.T, m *mocks.MockTransferClient) {
				t.Helper()

				m.On("GetBalance", mock.Anything, from, solrpc.CommitmentConfirmed).Return(balanceOf(1_000_000), nil).Once()
				m.On("EstimateFee", mock.Anything, mock.Anything, mock.Anything).Return(uint64(0), errors.New("cluster returned no fee for message")).Once()
			},
			wantKind:       prereq.KindTransport,
			wantMsgContain: "failed to estimate fee",
		},
		{
			name: "insufficient funds on send",
			giveReq: prereq.TransferRequest{
				From: from, To: to, Lamports: 10, Cluster: cldsol.ClusterDevnet,
			},
			beforeFunc: func(t *testing.T, m *mocks.MockTransferClient) {
				t.Helper()

				m.On("SendAndConfirmTx", mock.Anything, transferOf(t, from, to, 10), mock.Anything).
					Return(sollib.Signature{}, errors.New("insufficient funds")).Once()
			},
			wantKind:       prereq.KindTransport,
			wantMsgContain: "Oops, something went wrong: insufficient funds",
		},
		{
			name: "same sender and recipient",
			giveReq: prereq.TransferRequest{
				From: from, To: from, Lamports: 10, Cluster: cldsol.ClusterDevnet,
			},
			wantKind:       prereq.KindInvalidInput,
			wantMsgContain: "sender and recipient are the same address",
		},
		{
			name: "missing recipient",
			giveReq: prereq.TransferRequest{
				From: from, Lamports: 10, Cluster: cldsol.ClusterDevnet,
			},
			wantKind:       prereq.KindInvalidInput,
			wantMsgContain: "recipient is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := mocks.NewMockTransferClient(t)
			if tt.beforeFunc != nil {
				tt.beforeFunc(t, client)
			}

			got := prereq.Transfer(t.Context(), client, tt.giveReq)

			assert.Equal(t, prereq.OpTransfer, got.Operation)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Contains(t, got.Message(), tt.wantMsgContain)
			assert.Equal(t, tt.wantKind == prereq.KindNone, got.OK())
		})
	}
}

func TestSweep_IgnoresAmount(t *testing.T) {
	t.Parallel()

	from := randomAddress(t)
	to := randomAddress(t)
	sig := randomSignature(t)

	client := mocks.NewMockTransferClient(t)
	client.On("GetBalance", mock.Anything, from, solrpc.CommitmentConfirmed).Return(balanceOf(20_000), nil).Once()
	client.On("EstimateFee", mock.Anything, mock.Anything, mock.Anything).Return(uint64(5000), nil).Once()
	client.On("SendAndConfirmTx", mock.Anything, transferOf(t, from, to, 15_000), mock.Anything).Return(sig, nil).Once()

	got := prereq.Sweep(t.Context(), client, prereq.TransferRequest{
		From: from, To: to, Lamports: 1, Cluster: cldsol.ClusterMainnet,
	})

	require.True(t, got.OK())
	assert.Equal(t, "https://explorer.solana.com/tx/"+sig.String(), got.ExplorerURL)
}
