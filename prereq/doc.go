// Package prereq implements the devnet prerequisite operations: requesting an airdrop for a
// wallet, recording an enrollment with the prereq program, and sweeping a wallet balance to
// another address.
//
// Each operation is a single attempt against the cluster. Failures are returned inside a
// [Result] rather than as an error so that callers can report them and carry on:
//
//	res := prereq.RequestAirdrop(ctx, client, prereq.AirdropRequest{
//	    Recipient: key.PublicKey(),
//	    Lamports:  2 * solana.LAMPORTS_PER_SOL,
//	    Cluster:   cldsol.ClusterDevnet,
//	})
//	fmt.Println(res.Message())
//
// The cluster clients are injected behind the [AirdropRequester], [TransactionSender] and
// [TransferClient] interfaces.
package prereq
