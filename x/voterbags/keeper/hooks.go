package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

var _ stakingtypes.StakingHooks = Hooks{}

// Hooks keeps the voter list in step with the staking module. Validator operator accounts are listed
// as validators and every other account with a delegation as a nominator.
//
// Staking fires AfterDelegationModified during an undelegation before the validator's tokens are
// reduced, so the validator is rebagged on its old weight. It is corrected by the next hook that
// rebags it or by an explicit Rebag; until then it is only misplaced, never out of the list.
//
// Moving a nominator's only delegation with a redelegation removes it in BeforeDelegationRemoved and
// inserts it again in AfterDelegationModified, which puts it at the tail of its bag.
type Hooks struct {
	k Keeper
}

// Hooks returns the staking hooks. The keeper must have been built with a staking keeper.
func (k Keeper) Hooks() Hooks { return Hooks{k} }

func (h Hooks) AfterValidatorCreated(ctx context.Context, valAddr sdk.ValAddress) error {
	voter := sdk.AccAddress(valAddr)

	node, found, err := h.k.GetNode(ctx, voter)
	if err != nil {
		return err
	}
	if found {
		if node.VoterType == types.VoterTypeValidator {
			_, err := h.k.Rebag(ctx, voter)
			return err
		}
		// was listed as a nominator
		if err := h.k.Remove(ctx, voter); err != nil {
			return err
		}
	}

	h.k.Logger().Debug("validator joined voter list", "voter", voter.String())
	return h.k.Insert(ctx, voter, types.VoterTypeValidator, h.k.weightOf)
}

func (h Hooks) AfterValidatorRemoved(ctx context.Context, _ sdk.ConsAddress, valAddr sdk.ValAddress) error {
	voter := sdk.AccAddress(valAddr)

	if err := h.k.Remove(ctx, voter); err != nil {
		return err
	}

	// the operator may still be delegating elsewhere
	delegations, err := h.k.stakingKeeper.GetDelegatorDelegations(ctx, voter, 1)
	if err != nil {
		return err
	}
	if len(delegations) == 0 {
		h.k.Logger().Debug("validator left voter list", "voter", voter.String())
		return nil
	}
	return h.k.Insert(ctx, voter, types.VoterTypeNominator, h.k.weightOf)
}

func (h Hooks) AfterValidatorBonded(ctx context.Context, _ sdk.ConsAddress, valAddr sdk.ValAddress) error {
	_, err := h.k.Rebag(ctx, sdk.AccAddress(valAddr))
	return err
}

func (h Hooks) AfterValidatorBeginUnbonding(ctx context.Context, _ sdk.ConsAddress, valAddr sdk.ValAddress) error {
	_, err := h.k.Rebag(ctx, sdk.AccAddress(valAddr))
	return err
}

func (h Hooks) AfterDelegationModified(ctx context.Context, delAddr sdk.AccAddress, valAddr sdk.ValAddress) error {
	found, err := h.k.Contains(ctx, delAddr)
	if err != nil {
		return err
	}
	if !found {
		if err := h.k.Insert(ctx, delAddr, types.VoterTypeNominator, h.k.weightOf); err != nil {
			return err
		}
	} else if _, err := h.k.Rebag(ctx, delAddr); err != nil {
		return err
	}

	_, err = h.k.Rebag(ctx, sdk.AccAddress(valAddr))
	return err
}

func (h Hooks) BeforeDelegationRemoved(ctx context.Context, delAddr sdk.AccAddress, _ sdk.ValAddress) error {
	node, found, err := h.k.GetNode(ctx, delAddr)
	if err != nil || !found || node.VoterType != types.VoterTypeNominator {
		return err
	}

	// the delegation being removed is still counted here
	delegations, err := h.k.stakingKeeper.GetDelegatorDelegations(ctx, delAddr, 2)
	if err != nil {
		return err
	}
	if len(delegations) > 1 {
		return nil
	}

	h.k.Logger().Debug("nominator left voter list", "voter", delAddr.String())
	return h.k.Remove(ctx, delAddr)
}

func (h Hooks) BeforeValidatorModified(_ context.Context, _ sdk.ValAddress) error {
	return nil
}

func (h Hooks) BeforeDelegationCreated(_ context.Context, _ sdk.AccAddress, _ sdk.ValAddress) error {
	return nil
}

func (h Hooks) BeforeDelegationSharesModified(_ context.Context, _ sdk.AccAddress, _ sdk.ValAddress) error {
	return nil
}

// Weights only change once the slash has been applied; AfterValidatorBeginUnbonding or the next
// delegation change picks that up.
func (h Hooks) BeforeValidatorSlashed(_ context.Context, _ sdk.ValAddress, _ math.LegacyDec) error {
	return nil
}

func (h Hooks) AfterUnbondingInitiated(_ context.Context, _ uint64) error {
	return nil
}
