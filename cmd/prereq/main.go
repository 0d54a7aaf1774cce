// Command prereq requests devnet airdrops, records prereq enrollments and manages the wallet
// files they sign with.
package main

import (
	"os"

	"github.com/wba-cohort/solana-prereq/cmd/prereq/internal/cli"
)

func main() {
	app, err := cli.NewApp()
	if err != nil {
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
