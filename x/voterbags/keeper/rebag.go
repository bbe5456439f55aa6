package keeper

import (
	"context"
	"time"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

// Rebag moves the voter into the bag its current weight resolves to and reports the move.
//
// Anyone may trigger a rebag for any voter. A voter that is not in the list, or that already sits in
// the right bag, yields (nil, nil). On a move the voter_rebagged event is emitted and the voter list
// hooks are called.
func (k Keeper) Rebag(ctx context.Context, voter sdk.AccAddress) (*types.Movement, error) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), "rebag")

	node, found, err := k.GetNode(ctx, voter)
	if err != nil || !found {
		return nil, err
	}

	movement, err := k.UpdatePositionFor(ctx, node, k.weightOf)
	if err != nil || movement == nil {
		return nil, err
	}

	if err := k.afterRebagged(ctx, voter, *movement); err != nil {
		return nil, err
	}

	return movement, nil
}

func (k Keeper) afterRebagged(ctx context.Context, voter sdk.AccAddress, movement types.Movement) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	event, err := types.NewVoterRebaggedEvent(types.VoterRebaggedEvent{
		Voter: voter.String(),
		From:  movement.From,
		To:    movement.To,
	})
	if err != nil {
		return err
	}
	sdkCtx.EventManager().EmitEvent(event)

	telemetry.IncrCounter(1, types.ModuleName, "rebagged")

	k.Logger().Info("voter rebagged",
		"voter", voter.String(),
		"from", movement.From,
		"to", movement.To,
	)

	if k.hooks != nil {
		return k.hooks.AfterVoterRebagged(ctx, voter, movement.From, movement.To)
	}
	return nil
}
