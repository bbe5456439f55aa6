package keeper_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	"github.com/pushchain/voterbags/x/voterbags/keeper"
	"github.com/pushchain/voterbags/x/voterbags/types"
)

func TestStakingVoteWeight(t *testing.T) {
	f := SetupTest(t)
	require := require.New(t)

	operator, delegator, idle := f.addrs[0], f.addrs[1], f.addrs[2]
	sk := f.staking
	weightOf := keeper.StakingVoteWeight(sk)

	// operators weigh their validator's bonded tokens
	sk.EXPECT().GetValidator(gomock.Any(), sdk.ValAddress(operator)).
		Return(stakingtypes.Validator{Status: stakingtypes.Bonded, Tokens: math.NewInt(42)}, nil)
	w, err := weightOf(f.ctx, operator)
	require.NoError(err)
	require.Equal(uint64(42), w)

	// everyone else weighs their bonded delegations
	sk.EXPECT().GetValidator(gomock.Any(), sdk.ValAddress(delegator)).
		Return(stakingtypes.Validator{}, stakingtypes.ErrNoValidatorFound)
	sk.EXPECT().GetDelegatorBonded(gomock.Any(), delegator).Return(math.NewInt(7), nil)
	w, err = weightOf(f.ctx, delegator)
	require.NoError(err)
	require.Equal(uint64(7), w)

	sk.EXPECT().GetValidator(gomock.Any(), sdk.ValAddress(idle)).
		Return(stakingtypes.Validator{}, stakingtypes.ErrNoValidatorFound)
	sk.EXPECT().GetDelegatorBonded(gomock.Any(), idle).Return(math.ZeroInt(), nil)
	w, err = weightOf(f.ctx, idle)
	require.NoError(err)
	require.Zero(w)

	// unbonded validators weigh nothing
	sk.EXPECT().GetValidator(gomock.Any(), sdk.ValAddress(operator)).
		Return(stakingtypes.Validator{Status: stakingtypes.Unbonding, Tokens: math.NewInt(42)}, nil)
	w, err = weightOf(f.ctx, operator)
	require.NoError(err)
	require.Zero(w)

	// other lookup errors are returned
	boom := errors.New("boom")
	sk.EXPECT().GetValidator(gomock.Any(), sdk.ValAddress(operator)).Return(stakingtypes.Validator{}, boom)
	_, err = weightOf(f.ctx, operator)
	require.ErrorIs(err, boom)

	// the keeper can run on it directly
	sk.EXPECT().GetValidator(gomock.Any(), sdk.ValAddress(delegator)).
		Return(stakingtypes.Validator{}, stakingtypes.ErrNoValidatorFound)
	sk.EXPECT().GetDelegatorBonded(gomock.Any(), delegator).Return(math.NewInt(7), nil)
	k := keeper.NewKeeper(f.storeService, f.logger, types.Thresholds{5, 10}, weightOf, sk)
	require.NoError(k.Insert(f.ctx, delegator, types.VoterTypeNominator, k.WeightOf()))
	upper, _, err := k.BagFor(f.ctx, delegator)
	require.NoError(err)
	require.Equal(uint64(10), upper)
}
