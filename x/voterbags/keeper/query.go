package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

// BagFor returns the upper bound of the bag the voter currently sits in.
func (k Keeper) BagFor(ctx context.Context, voter sdk.AccAddress) (uint64, bool, error) {
	node, found, err := k.GetNode(ctx, voter)
	if err != nil || !found {
		return 0, false, err
	}
	return node.BagUpper, true, nil
}

// IsMisplaced reports whether the voter's current weight belongs in another bag, i.e. whether a
// rebag would move it. Voters that are not in the list are never misplaced.
func (k Keeper) IsMisplaced(ctx context.Context, voter sdk.AccAddress) (bool, error) {
	node, found, err := k.GetNode(ctx, voter)
	if err != nil || !found {
		return false, err
	}

	weight, err := k.weightOf(ctx, voter)
	if err != nil {
		return false, errorsmod.Wrapf(err, "failed to get weight of voter %s", voter)
	}

	return node.IsMisplaced(weight, k.thresholds), nil
}

// ElectionSnapshot returns up to limit voters in iteration order together with their current weight.
// A limit of zero returns every voter.
//
// Within a bag voters are in insertion order, so the weights are only sorted across bags.
func (k Keeper) ElectionSnapshot(ctx context.Context, limit uint32) ([]types.Voter, error) {
	var voters []types.Voter

	err := k.Walk(ctx, func(node types.Node) (bool, error) {
		weight, err := k.weightOf(ctx, node.ID)
		if err != nil {
			return true, errorsmod.Wrapf(err, "failed to get weight of voter %s", node.ID)
		}
		voters = append(voters, types.Voter{
			Address:   node.ID,
			VoterType: node.VoterType,
			Weight:    weight,
		})
		return limit > 0 && uint32(len(voters)) >= limit, nil
	})
	if err != nil {
		return nil, err
	}

	return voters, nil
}

// BagSummaries describes every occupied bag, from the highest upper bound to the lowest.
func (k Keeper) BagSummaries(ctx context.Context) ([]types.BagSummary, error) {
	var summaries []types.BagSummary

	count, err := k.Count(ctx)
	if err != nil {
		return nil, err
	}

	uppers := k.thresholds.Uppers()
	for i := len(uppers) - 1; i >= 0; i-- {
		bag, found, err := k.GetBag(ctx, uppers[i])
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		summary := types.BagSummary{BagUpper: bag.BagUpper, Head: bag.Head, Tail: bag.Tail}
		for id := bag.Head; !id.Empty(); {
			node, err := k.mustGetNode(ctx, id, "member of bag")
			if err != nil {
				return nil, err
			}
			summary.Count++
			if summary.Count > count {
				return nil, errorsmod.Wrapf(types.ErrCorruptedList, "bag %d holds more voters than the list", bag.BagUpper)
			}
			id = node.Next
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
