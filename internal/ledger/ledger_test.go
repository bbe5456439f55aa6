package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	simtestutil "github.com/cosmos/cosmos-sdk/testutil/sims"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

func TestLedger_OpenModes(t *testing.T) {
	t.Run("in-memory", func(t *testing.T) {
		l, err := OpenInMemory()
		require.NoError(t, err)
		runSampleWeightTest(t, l)
		assert.NoError(t, l.Close())
	})

	t.Run("file-based", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested")

		l, err := OpenFile(dir, "ledger.db")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "ledger.db"))
		runSampleWeightTest(t, l)
		require.NoError(t, l.Close())

		// data survives a reopen
		l, err = OpenFile(dir, "ledger.db")
		require.NoError(t, err)
		defer l.Close()

		addr := simtestutil.CreateIncrementalAccounts(1)[0]
		w, found, err := l.Weight(context.Background(), addr)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, uint64(77), w)
	})
}

func runSampleWeightTest(t *testing.T, l *Ledger) {
	ctx := context.Background()
	addr := simtestutil.CreateIncrementalAccounts(1)[0]

	require.NoError(t, l.SetWeight(ctx, addr, 77))
	w, found, err := l.Weight(ctx, addr)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(77), w)
}

func TestLedger_Weights(t *testing.T) {
	ctx := context.Background()
	l, err := OpenInMemory()
	require.NoError(t, err)
	defer l.Close()

	addrs := simtestutil.CreateIncrementalAccounts(2)

	_, found, err := l.Weight(ctx, addrs[0])
	require.NoError(t, err)
	require.False(t, found)

	_, err = l.VoteWeight(ctx, addrs[0])
	require.True(t, errors.Is(err, ErrNoStake))

	// values above MaxInt64 survive
	require.NoError(t, l.SetWeight(ctx, addrs[0], types.MaxVoteWeight))
	w, err := l.VoteWeight(ctx, addrs[0])
	require.NoError(t, err)
	require.Equal(t, types.MaxVoteWeight, w)

	// upsert
	require.NoError(t, l.SetWeight(ctx, addrs[0], 5))
	require.NoError(t, l.SetWeight(ctx, addrs[1], 6))
	w, err = l.VoteWeight(ctx, addrs[0])
	require.NoError(t, err)
	require.Equal(t, uint64(5), w)

	stakes, err := l.Stakes(ctx)
	require.NoError(t, err)
	require.Len(t, stakes, 2)

	require.NoError(t, l.DeleteWeight(ctx, addrs[0]))
	_, found, err = l.Weight(ctx, addrs[0])
	require.NoError(t, err)
	require.False(t, found)

	// re-adding after a delete does not hit the unique index
	require.NoError(t, l.SetWeight(ctx, addrs[0], 9))
	w, err = l.VoteWeight(ctx, addrs[0])
	require.NoError(t, err)
	require.Equal(t, uint64(9), w)
}

func TestLedger_Thresholds(t *testing.T) {
	ctx := context.Background()
	l, err := OpenInMemory()
	require.NoError(t, err)
	defer l.Close()

	_, found, err := l.Thresholds(ctx)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, l.SetThresholds(ctx, types.Thresholds{10, 20}))
	require.NoError(t, l.SetThresholds(ctx, types.Thresholds{10, 20, 40}))

	th, found, err := l.Thresholds(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, types.Thresholds{10, 20, 40}, th)

	var rows int64
	require.NoError(t, l.client.Model(&ListSettings{}).Count(&rows).Error)
	require.Equal(t, int64(1), rows)

	// an empty list is a valid single bag setup
	require.NoError(t, l.SetThresholds(ctx, types.Thresholds{}))
	th, found, err = l.Thresholds(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, th)
}

func TestLedger_InvalidPath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	l, err := OpenFile(filepath.Join(file, "sub"), "ledger.db")
	require.ErrorContains(t, err, "failed to prepare database path")
	require.Nil(t, l)
}
