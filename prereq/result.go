package prereq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sollib "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"

	"github.com/wba-cohort/solana-prereq/chain/solana/provider/rpcclient"
)

// ErrorKind classifies why an operation failed.
type ErrorKind string

const (
	// KindNone is the kind of a successful result.
	KindNone ErrorKind = ""
	// KindTransport means the RPC endpoint could not be reached or answered garbage.
	KindTransport ErrorKind = "transport"
	// KindRateLimited means the cluster refused the request because of a quota, typically the
	// devnet airdrop limit.
	KindRateLimited ErrorKind = "rate_limited"
	// KindRejected means the cluster or the program rejected the transaction, e.g. a failed
	// simulation or an enrollment account that already exists.
	KindRejected ErrorKind = "rejected"
	// KindTimeout means the context expired before the cluster answered.
	KindTimeout ErrorKind = "timeout"
	// KindInvalidInput means the request was refused locally before any network call.
	KindInvalidInput ErrorKind = "invalid_input"
)

// errInvalidInput marks request validation failures.
var errInvalidInput = errors.New("invalid input")

// Result is the outcome of an operation: a transaction signature on success, an error kind and
// error otherwise.
type Result struct {
	// Operation names the operation, e.g. "airdrop".
	Operation string
	// Signature identifies the submitted transaction. It may be set on failure when the
	// transaction was submitted but failed to confirm.
	Signature sollib.Signature
	// ExplorerURL links to the transaction on the public explorer. Only set on success.
	ExplorerURL string
	Kind        ErrorKind
	Err         error
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Message renders the result for the console.
func (r Result) Message() string {
	if r.OK() {
		return fmt.Sprintf("Success! Check out your TX here:\n%s", r.ExplorerURL)
	}

	return fmt.Sprintf("Oops, something went wrong: %s", r.Err)
}

// Classify maps an error returned by the cluster client to an ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	if errors.Is(err, errInvalidInput) {
		return KindInvalidInput
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindTimeout
	}

	var txErr *rpcclient.TransactionError
	if errors.As(err, &txErr) {
		return KindRejected
	}

	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		if rpcErr.Code == 429 || isQuotaMessage(rpcErr.Message) {
			return KindRateLimited
		}

		return KindRejected
	}

	// Rate limiting on the public endpoints comes back as a plain HTTP 429, not a JSON-RPC
	// error.
	if isQuotaMessage(err.Error()) {
		return KindRateLimited
	}

	return KindTransport
}

func isQuotaMessage(msg string) bool {
	msg = strings.ToLower(msg)

	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "airdrop limit") ||
		strings.Contains(msg, "faucet has run dry")
}

// failure builds a failed Result for err.
func failure(op string, sig sollib.Signature, err error) Result {
	return Result{
		Operation: op,
		Signature: sig,
		Kind:      Classify(err),
		Err:       err,
	}
}

// invalid builds a failed Result for a request that was refused locally.
func invalid(op string, format string, args ...any) Result {
	return failure(op, sollib.Signature{}, fmt.Errorf("%w: %s", errInvalidInput, fmt.Sprintf(format, args...)))
}
