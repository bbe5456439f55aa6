package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

// StakingVoteWeight returns a weight oracle backed by the staking module.
//
// A voter whose account is also a validator operator weighs the validator's bonded tokens. Any other
// voter weighs the tokens it has bonded through delegations.
func StakingVoteWeight(sk types.StakingKeeper) types.VoteWeightFn {
	return func(ctx context.Context, voter sdk.AccAddress) (uint64, error) {
		validator, err := sk.GetValidator(ctx, sdk.ValAddress(voter))
		switch {
		case err == nil:
			return types.CurrencyToVote(validator.GetBondedTokens()), nil
		case !errorsmod.IsOf(err, stakingtypes.ErrNoValidatorFound):
			return 0, err
		}

		bonded, err := sk.GetDelegatorBonded(ctx, voter)
		if err != nil {
			return 0, err
		}
		return types.CurrencyToVote(bonded), nil
	}
}
