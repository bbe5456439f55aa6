package sandbox

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	simtestutil "github.com/cosmos/cosmos-sdk/testutil/sims"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/pushchain/voterbags/internal/config"
	"github.com/pushchain/voterbags/x/voterbags/types"
)

func openMem(t *testing.T, thresholds types.Thresholds) *Sandbox {
	t.Helper()
	s, err := Open(Options{Backend: config.BackendMemDB, Thresholds: thresholds, Logger: log.NewTestLogger(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSandbox_Operations(t *testing.T) {
	s := openMem(t, types.Thresholds{10, 20})
	require := require.New(t)
	addrs := simtestutil.CreateIncrementalAccounts(3)

	require.NoError(s.AddVoter(addrs[0], types.VoterTypeNominator, 5))
	require.NoError(s.AddVoter(addrs[1], types.VoterTypeValidator, 15))
	require.NoError(s.AddVoter(addrs[2], types.VoterTypeNominator, 25))

	err := s.AddVoter(addrs[0], types.VoterTypeNominator, 5)
	require.True(errors.Is(err, types.ErrDuplicateVoter))

	voters, err := s.List(0)
	require.NoError(err)
	require.Len(voters, 3)
	require.Equal(addrs[2], voters[0].Address)
	require.Equal(uint64(25), voters[0].Weight)

	// stake change without rebag leaves the voter misplaced
	movement, err := s.SetWeight(addrs[0], 30, false)
	require.NoError(err)
	require.Nil(movement)

	info, found, err := s.Voter(addrs[0])
	require.NoError(err)
	require.True(found)
	require.Equal(uint64(10), info.BagUpper)
	require.Equal(uint64(30), info.Weight)
	require.True(info.Misplaced)

	movement, err = s.Rebag(addrs[0])
	require.NoError(err)
	require.Equal(&types.Movement{From: 10, To: types.MaxVoteWeight}, movement)

	movement, err = s.SetWeight(addrs[1], 12, true)
	require.NoError(err)
	require.Nil(movement)

	bags, err := s.Bags()
	require.NoError(err)
	require.Len(bags, 2)
	require.Equal(types.MaxVoteWeight, bags[0].BagUpper)
	require.Equal(uint64(2), bags[0].Count)

	require.NoError(s.RemoveVoter(addrs[2]))
	count, err := s.Count()
	require.NoError(err)
	require.Equal(uint64(2), count)

	_, found, err = s.Voter(addrs[2])
	require.NoError(err)
	require.False(found)

	stakes, err := s.Stakes()
	require.NoError(err)
	require.Len(stakes, 2)

	require.NoError(s.Check())
}

func TestSandbox_FailedInsertIsNotCommitted(t *testing.T) {
	s := openMem(t, types.Thresholds{10, 20})
	addrs := simtestutil.CreateIncrementalAccounts(1)

	err := s.AddVoter(addrs[0], types.VoterTypeUnspecified, 5)
	require.True(t, errors.Is(err, types.ErrInvalidVoterType))

	count, err := s.Count()
	require.NoError(t, err)
	require.Zero(t, count)

	// rejected by the keeper after the sandbox's own checks passed
	err = s.AddVoter(sdk.AccAddress{}, types.VoterTypeNominator, 5)
	require.True(t, errors.Is(err, sdkerrors.ErrInvalidAddress))

	stakes, err := s.Stakes()
	require.NoError(t, err)
	require.Empty(t, stakes)
}

func TestSandbox_ThresholdChangeRequiresMigrate(t *testing.T) {
	dir := t.TempDir()
	addrs := simtestutil.CreateIncrementalAccounts(3)

	s, err := Open(Options{Dir: dir, Backend: config.BackendGoLevelDB, Thresholds: types.Thresholds{10}})
	require.NoError(t, err)
	require.NoError(t, s.AddVoter(addrs[0], types.VoterTypeNominator, 5))
	require.NoError(t, s.AddVoter(addrs[1], types.VoterTypeNominator, 12))
	require.NoError(t, s.AddVoter(addrs[2], types.VoterTypeNominator, 50))
	require.NoError(t, s.Close())

	s, err = Open(Options{Dir: dir, Backend: config.BackendGoLevelDB, Thresholds: types.Thresholds{10, 20}})
	require.NoError(t, err)
	defer s.Close()

	configured, stored, stale := s.Thresholds()
	require.True(t, stale)
	require.Equal(t, types.Thresholds{10, 20}, configured)
	require.Equal(t, types.Thresholds{10}, stored)

	// reads still work against the stored layout
	require.NoError(t, s.Check())
	voters, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, voters, 3)

	_, err = s.Rebag(addrs[1])
	require.True(t, errors.Is(err, ErrThresholdsChanged))
	require.True(t, errors.Is(s.AddVoter(addrs[0], types.VoterTypeNominator, 1), ErrThresholdsChanged))

	moved, err := s.Migrate()
	require.NoError(t, err)
	require.Equal(t, uint32(1), moved)

	info, found, err := s.Voter(addrs[1])
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(20), info.BagUpper)
	require.NoError(t, s.Check())

	_, _, stale = s.Thresholds()
	require.False(t, stale)

	moved, err = s.Migrate()
	require.NoError(t, err)
	require.Zero(t, moved)
}

func TestOpen_InvalidOptions(t *testing.T) {
	_, err := Open(Options{Backend: config.BackendMemDB, Thresholds: types.Thresholds{2, 1}})
	require.True(t, errors.Is(err, types.ErrInvalidThresholds))

	_, err = Open(Options{Backend: "rocksdb", Thresholds: types.Thresholds{1}})
	require.ErrorContains(t, err, "unsupported db backend")
}
