package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wba-cohort/solana-prereq/pkg/config"
	"github.com/wba-cohort/solana-prereq/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	lggr := logger.Nop()
	settings := config.Default()
	cmds := New(lggr, settings)

	require.NotNil(t, cmds)
	assert.Equal(t, lggr, cmds.lggr)
	assert.Same(t, settings, cmds.settings)
}

func TestCommands_All(t *testing.T) {
	t.Parallel()

	cmds := New(logger.Nop(), config.Default())

	all, err := cmds.All()
	require.NoError(t, err)

	uses := make([]string, 0, len(all))
	for _, cmd := range all {
		uses = append(uses, cmd.Use)
	}
	assert.Equal(t, []string{"airdrop", "enroll", "transfer", "wallet"}, uses)
}

func TestCommands_MissingSettings(t *testing.T) {
	t.Parallel()

	cmds := New(logger.Nop(), nil)

	_, err := cmds.Airdrop()
	require.ErrorContains(t, err, "missing required fields: Settings")

	// the wallet commands do not need settings
	_, err = cmds.Wallet()
	require.NoError(t, err)

	_, err = cmds.All()
	require.Error(t, err)
}
