package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"
	simtestutil "github.com/cosmos/cosmos-sdk/testutil/sims"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

func TestNode_IsMisplaced(t *testing.T) {
	th := types.Thresholds{10, 20}
	node := types.Node{ID: simtestutil.CreateIncrementalAccounts(1)[0], BagUpper: 20}

	require.False(t, node.IsMisplaced(11, th))
	require.False(t, node.IsMisplaced(20, th))
	require.True(t, node.IsMisplaced(10, th))
	require.True(t, node.IsMisplaced(21, th))
	require.True(t, node.IsHead())
	require.True(t, node.IsTail())
}

func TestParseVoterType(t *testing.T) {
	vt, err := types.ParseVoterType("Validator")
	require.NoError(t, err)
	require.Equal(t, types.VoterTypeValidator, vt)

	vt, err = types.ParseVoterType(" nominator ")
	require.NoError(t, err)
	require.Equal(t, types.VoterTypeNominator, vt)

	_, err = types.ParseVoterType("unspecified")
	require.ErrorIs(t, err, types.ErrInvalidVoterType)
	require.Error(t, types.VoterType(7).Validate())
}

func TestCurrencyToVote(t *testing.T) {
	require.Zero(t, types.CurrencyToVote(math.Int{}))
	require.Zero(t, types.CurrencyToVote(math.NewInt(-5)))
	require.Zero(t, types.CurrencyToVote(math.ZeroInt()))
	require.Equal(t, uint64(1234), types.CurrencyToVote(math.NewInt(1234)))
	require.Equal(t, types.MaxVoteWeight, types.CurrencyToVote(math.NewIntFromUint64(types.MaxVoteWeight)))

	huge, ok := math.NewIntFromString("100000000000000000000000")
	require.True(t, ok)
	require.Equal(t, types.MaxVoteWeight, types.CurrencyToVote(huge))
}
