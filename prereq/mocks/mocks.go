// Package mocks provides testify mocks of the prereq cluster client interfaces.
package mocks

import (
	"context"

	sollib "github.com/gagliardetto/solana-go"
	solrpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/mock"

	"github.com/wba-cohort/solana-prereq/chain/solana/provider/rpcclient"
)

// testingT is the subset of testing.TB the mocks need to register their expectations check.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAirdropRequester is a mock of prereq.AirdropRequester.
type MockAirdropRequester struct {
	mock.Mock
}

// NewMockAirdropRequester creates a MockAirdropRequester whose expectations are asserted when
// the test ends.
func NewMockAirdropRequester(t testingT) *MockAirdropRequester {
	m := &MockAirdropRequester{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// RequestAirdrop provides a mock function.
func (m *MockAirdropRequester) RequestAirdrop(
	ctx context.Context,
	account sollib.PublicKey,
	lamports uint64,
	commitment solrpc.CommitmentType,
) (sollib.Signature, error) {
	ret := m.Called(ctx, account, lamports, commitment)

	return ret.Get(0).(sollib.Signature), ret.Error(1)
}

// MockTransactionSender is a mock of prereq.TransactionSender.
type MockTransactionSender struct {
	mock.Mock
}

// NewMockTransactionSender creates a MockTransactionSender whose expectations are asserted when
// the test ends.
func NewMockTransactionSender(t testingT) *MockTransactionSender {
	m := &MockTransactionSender{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// SendAndConfirmTx provides a mock function. The send options are passed to the mock as a single
// slice argument.
func (m *MockTransactionSender) SendAndConfirmTx(
	ctx context.Context,
	instructions []sollib.Instruction,
	opts ...rpcclient.SendOpt,
) (sollib.Signature, error) {
	ret := m.Called(ctx, instructions, opts)

	return ret.Get(0).(sollib.Signature), ret.Error(1)
}

// MockTransferClient is a mock of prereq.TransferClient.
type MockTransferClient struct {
	MockTransactionSender
}

// NewMockTransferClient creates a MockTransferClient whose expectations are asserted when the
// test ends.
func NewMockTransferClient(t testingT) *MockTransferClient {
	m := &MockTransferClient{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// GetBalance provides a mock function.
func (m *MockTransferClient) GetBalance(
	ctx context.Context,
	account sollib.PublicKey,
	commitment solrpc.CommitmentType,
) (*solrpc.GetBalanceResult, error) {
	ret := m.Called(ctx, account, commitment)

	var res *solrpc.GetBalanceResult
	if v := ret.Get(0); v != nil {
		res = v.(*solrpc.GetBalanceResult)
	}

	return res, ret.Error(1)
}

// EstimateFee provides a mock function. The send options are passed to the mock as a single
// slice argument.
func (m *MockTransferClient) EstimateFee(
	ctx context.Context,
	instructions []sollib.Instruction,
	opts ...rpcclient.SendOpt,
) (uint64, error) {
	ret := m.Called(ctx, instructions, opts)

	return ret.Get(0).(uint64), ret.Error(1)
}
