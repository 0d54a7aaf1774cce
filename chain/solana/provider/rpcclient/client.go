package rpcclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	sollib "github.com/gagliardetto/solana-go"
	solrpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// sendConfig defines the configuration for sending transactions.
type sendConfig struct {
	// RetryAttempts determines how many times the blockhash fetch and the submission are
	// attempted. Defaults to 1: a transaction is submitted once. A submission is only ever
	// repeated for a "Blockhash not found" response, which means the node never accepted it.
	RetryAttempts uint
	// RetryDelay is the duration to wait between retry attempts.
	RetryDelay time.Duration
	// ConfirmRetryAttempts bounds how many times the signature status is polled while waiting
	// for the transaction to reach Commitment.
	ConfirmRetryAttempts uint
	// ConfirmRetryDelay is the duration to wait between signature status polls.
	ConfirmRetryDelay time.Duration
	// TxModifiers is a slice of functions that modify the transaction before sending.
	// These can be used to add signers, set compute unit limits, adjust fees, etc.
	TxModifiers []TxModifier
	// Commitment is used for the blockhash, the preflight simulation and confirmation.
	Commitment solrpc.CommitmentType
}

// RetryOpts returns the retry options for sending transactions.
func (c *sendConfig) RetryOpts(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(c.RetryAttempts),
		retry.Delay(c.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	}
}

// ConfirmRetryOpts returns the retry options for confirming transactions.
func (c *sendConfig) ConfirmRetryOpts(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(c.ConfirmRetryAttempts),
		retry.Delay(c.ConfirmRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	}
}

// sendAndConfirmConfigDefault provides a default configuration for sending and confirming
// transactions.
var sendAndConfirmConfigDefault = sendConfig{
	RetryAttempts:        1,
	RetryDelay:           50 * time.Millisecond,
	ConfirmRetryAttempts: 120,
	ConfirmRetryDelay:    500 * time.Millisecond,
	TxModifiers:          make([]TxModifier, 0),
	Commitment:           solrpc.CommitmentConfirmed,
}

// SendOpt is a functional option type that allows for configuring Send operations.
type SendOpt func(*sendConfig)

// WithRetry sets the number of attempts and the delay between attempts for fetching the
// blockhash and submitting the transaction.
func WithRetry(attempts uint, delay time.Duration) SendOpt {
	return func(config *sendConfig) {
		config.RetryAttempts = attempts
		config.RetryDelay = delay
	}
}

// WithConfirmRetry sets how many times, and how often, the signature status is polled.
func WithConfirmRetry(attempts uint, delay time.Duration) SendOpt {
	return func(config *sendConfig) {
		config.ConfirmRetryAttempts = attempts
		config.ConfirmRetryDelay = delay
	}
}

// WithCommitment sets the commitment level used for preflight and confirmation.
func WithCommitment(commitment solrpc.CommitmentType) SendOpt {
	return func(config *sendConfig) {
		if commitment != "" {
			config.Commitment = commitment
		}
	}
}

// WithTxModifiers allows adding transaction modifiers to the send configuration.
func WithTxModifiers(modifiers ...TxModifier) SendOpt {
	return func(config *sendConfig) {
		config.TxModifiers = append(config.TxModifiers, modifiers...)
	}
}

// TransactionError is returned when a submitted transaction was processed by the cluster but
// failed, e.g. because a program rejected the instruction.
type TransactionError struct {
	Signature sollib.Signature
	Err       any
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Signature, e.Err)
}

// Client is a wrapper around the solana RPC client that signs with a single key pair and
// provides send-and-confirm semantics.
type Client struct {
	*solrpc.Client

	Signer sollib.PrivateKey
}

// New creates a new Client instance with the provided Solana RPC client and the signer's private
// key.
func New(client *solrpc.Client, signer sollib.PrivateKey) *Client {
	return &Client{
		Client: client,
		Signer: signer,
	}
}

// SendAndConfirmTx builds, signs, sends, and confirms a transaction using the given instructions.
// It applies any provided options for retries and transaction modification, fetches the latest
// blockhash, signs with the signer's key, and waits for the transaction to be confirmed. The
// returned signature identifies the transaction.
func (c *Client) SendAndConfirmTx(
	ctx context.Context,
	instructions []sollib.Instruction,
	opts ...SendOpt,
) (sollib.Signature, error) {
	// Initialize the configuration with defaults or provided options.
	config := sendAndConfirmConfigDefault
	for _, opt := range opts {
		opt(&config)
	}

	// Fetch the latest blockhash to use in the transaction.
	hashRes, err := c.getLatestBlockhash(ctx, config.Commitment, config.RetryOpts(ctx)...)
	if err != nil {
		return sollib.Signature{}, fmt.Errorf("error getting latest blockhash: %w", err)
	}

	// Construct the transaction with the blockhash and instructions
	tx, err := c.newTx(hashRes.Value.Blockhash, instructions)
	if err != nil {
		return sollib.Signature{}, fmt.Errorf("error constructing transaction: %w", err)
	}

	// Build the signers map
	signers := map[sollib.PublicKey]sollib.PrivateKey{}
	signers[c.Signer.PublicKey()] = c.Signer

	// Apply TxModifiers to the transaction.
	for _, o := range config.TxModifiers {
		if err = o(tx, signers); err != nil {
			return sollib.Signature{}, err
		}
	}

	// Sign the transaction
	if _, err = tx.Sign(func(pub sollib.PublicKey) *sollib.PrivateKey {
		priv, ok := signers[pub]
		if !ok {
			return nil
		}

		return &priv
	}); err != nil {
		return sollib.Signature{}, fmt.Errorf("error signing transaction: %w", err)
	}

	// Send the transaction
	txsig, err := c.sendTx(ctx, tx, solrpc.TransactionOpts{
		SkipPreflight:       false, // preflight surfaces program errors before anything lands
		PreflightCommitment: config.Commitment,
	}, config.RetryOpts(ctx)...)
	if err != nil {
		return sollib.Signature{}, fmt.Errorf("error sending transaction: %w", err)
	}

	// Confirm the transaction
	if err = c.confirmTx(ctx, txsig, config.Commitment, config.ConfirmRetryOpts(ctx)...); err != nil {
		return txsig, fmt.Errorf("error confirming transaction: %w", err)
	}

	return txsig, nil
}

// EstimateFee returns the fee in lamports the cluster charges for a transaction made of the
// given instructions, paid and signed by the signer. The TxModifiers of opts are applied first
// so that a compute unit price is part of the estimate.
func (c *Client) EstimateFee(
	ctx context.Context,
	instructions []sollib.Instruction,
	opts ...SendOpt,
) (uint64, error) {
	config := sendAndConfirmConfigDefault
	for _, opt := range opts {
		opt(&config)
	}

	hashRes, err := c.GetLatestBlockhash(ctx, config.Commitment)
	if err != nil {
		return 0, fmt.Errorf("error getting latest blockhash: %w", err)
	}

	tx, err := c.newTx(hashRes.Value.Blockhash, instructions)
	if err != nil {
		return 0, fmt.Errorf("error constructing transaction: %w", err)
	}

	signers := map[sollib.PublicKey]sollib.PrivateKey{}
	for _, o := range config.TxModifiers {
		if err = o(tx, signers); err != nil {
			return 0, err
		}
	}

	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return 0, fmt.Errorf("error encoding message: %w", err)
	}

	feeRes, err := c.GetFeeForMessage(ctx, base64.StdEncoding.EncodeToString(msg), config.Commitment)
	if err != nil {
		return 0, fmt.Errorf("error getting fee for message: %w", err)
	}
	if feeRes == nil || feeRes.Value == nil {
		return 0, errors.New("cluster returned no fee for message")
	}

	return *feeRes.Value, nil
}

// newTx constructs a new Solana transaction with the provided recent blockhash and instructions.
// The signer pays the fees.
func (c *Client) newTx(
	recentBlockHash sollib.Hash,
	instructions []sollib.Instruction,
) (*sollib.Transaction, error) {
	return sollib.NewTransaction(
		instructions,
		recentBlockHash,
		sollib.TransactionPayer(c.Signer.PublicKey()),
	)
}

// getLatestBlockhash fetches the latest blockhash from the Solana RPC client, retrying if
// necessary based on the provided retry options.
func (c *Client) getLatestBlockhash(
	ctx context.Context, commitment solrpc.CommitmentType, retryOpts ...retry.Option,
) (*solrpc.GetLatestBlockhashResult, error) {
	var result *solrpc.GetLatestBlockhashResult

	err := retry.Do(func() error {
		var rerr error

		result, rerr = c.GetLatestBlockhash(ctx, commitment)

		return rerr
	}, retryOpts...)

	return result, err
}

// sendTx sends a transaction to the Solana network using the provided transaction options.
// Only a "Blockhash not found" response is retried; every other error is final.
func (c *Client) sendTx(
	ctx context.Context,
	tx *sollib.Transaction,
	txOpts solrpc.TransactionOpts,
	retryOpts ...retry.Option,
) (sollib.Signature, error) {
	var txsig sollib.Signature

	err := retry.Do(func() error {
		var rerr error

		txsig, rerr = c.SendTransactionWithOpts(ctx, tx, txOpts)
		if rerr != nil {
			var rpcErr *jsonrpc.RPCError
			if errors.As(rerr, &rpcErr) && strings.Contains(rpcErr.Message, "Blockhash not found") {
				// the node has not seen the blockhash it just handed out, nothing was accepted
				return fmt.Errorf("blockhash not found: %w", rerr)
			}

			// preflight or program rejection, or the rpc service could not be reached
			return retry.Unrecoverable(rerr)
		}

		return nil
	}, retryOpts...)

	return txsig, err
}

// confirmTx polls the signature status until it reaches the commitment level. A status
// carrying an error stops polling with a *TransactionError.
func (c *Client) confirmTx(
	ctx context.Context,
	txsig sollib.Signature,
	commitment solrpc.CommitmentType,
	retryOpts ...retry.Option,
) error {
	return retry.Do(func() error {
		statusRes, err := c.GetSignatureStatuses(ctx, true, txsig)
		if err != nil {
			// Retry if we hit an error fetching the signature status. Devnet can be flakey.
			return err
		}

		if statusRes == nil || len(statusRes.Value) == 0 || statusRes.Value[0] == nil {
			return fmt.Errorf("transaction %s not yet visible", txsig)
		}

		status := statusRes.Value[0]
		if status.Err != nil {
			return retry.Unrecoverable(&TransactionError{Signature: txsig, Err: status.Err})
		}

		if !reachedCommitment(status.ConfirmationStatus, commitment) {
			return fmt.Errorf("transaction %s is %q, waiting for %q", txsig, status.ConfirmationStatus, commitment)
		}

		return nil
	}, retryOpts...)
}

// reachedCommitment reports whether a confirmation status satisfies the commitment level.
func reachedCommitment(status solrpc.ConfirmationStatusType, commitment solrpc.CommitmentType) bool {
	switch commitment {
	case solrpc.CommitmentFinalized:
		return status == solrpc.ConfirmationStatusFinalized
	case solrpc.CommitmentProcessed:
		return status != ""
	default:
		return status == solrpc.ConfirmationStatusConfirmed || status == solrpc.ConfirmationStatusFinalized
	}
}
