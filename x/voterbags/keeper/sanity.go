package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

// SanityCheck verifies the structure of the whole list and returns the first inconsistency found,
// wrapped in ErrCorruptedList. It reads every record and is meant for tests, invariants and tooling.
func (k Keeper) SanityCheck(ctx context.Context) error {
	count, err := k.Count(ctx)
	if err != nil {
		return err
	}

	// nodes
	var nodes uint64
	err = k.VoterNodes.Walk(ctx, nil, func(voter sdk.AccAddress, node types.Node) (bool, error) {
		nodes++
		if !node.ID.Equals(voter) {
			return true, errorsmod.Wrapf(types.ErrCorruptedList, "node stored under %s has id %s", voter, node.ID)
		}

		upper, err := k.VoterBagFor.Get(ctx, voter)
		if err != nil {
			return true, errorsmod.Wrapf(types.ErrCorruptedList, "no bag index entry for voter %s: %s", voter, err)
		}
		if upper != node.BagUpper {
			return true, errorsmod.Wrapf(types.ErrCorruptedList,
				"bag index of voter %s is %d but its node is in bag %d", voter, upper, node.BagUpper)
		}
		return false, nil
	})
	if err != nil {
		return err
	}
	if nodes != count {
		return errorsmod.Wrapf(types.ErrCorruptedList, "counter is %d but %d nodes are stored", count, nodes)
	}

	var indexed uint64
	err = k.VoterBagFor.Walk(ctx, nil, func(_ sdk.AccAddress, _ uint64) (bool, error) {
		indexed++
		return false, nil
	})
	if err != nil {
		return err
	}
	if indexed != nodes {
		return errorsmod.Wrapf(types.ErrCorruptedList, "%d bag index entries for %d nodes", indexed, nodes)
	}

	// bags
	var reachable uint64
	seen := make(map[string]struct{}, nodes)
	err = k.VoterBags.Walk(ctx, nil, func(upper uint64, bag types.Bag) (bool, error) {
		if bag.BagUpper != upper {
			return true, errorsmod.Wrapf(types.ErrCorruptedList, "bag stored under %d has upper bound %d", upper, bag.BagUpper)
		}
		if !k.thresholds.IsBagUpper(upper) {
			return true, errorsmod.Wrapf(types.ErrCorruptedList, "bag %d is not defined by thresholds [%s]", upper, k.thresholds)
		}
		if bag.Head.Empty() || bag.Tail.Empty() {
			return true, errorsmod.Wrapf(types.ErrCorruptedList, "stored bag %d has an empty end: %s", upper, bag)
		}

		var prev sdk.AccAddress
		for id := bag.Head; !id.Empty(); {
			if _, dup := seen[string(id)]; dup {
				return true, errorsmod.Wrapf(types.ErrCorruptedList, "voter %s reached twice while walking bag %d", id, upper)
			}
			seen[string(id)] = struct{}{}

			node, found, err := k.GetNode(ctx, id)
			if err != nil {
				return true, err
			}
			if !found {
				return true, errorsmod.Wrapf(types.ErrCorruptedList, "bag %d links to missing voter %s", upper, id)
			}
			if node.BagUpper != upper {
				return true, errorsmod.Wrapf(types.ErrCorruptedList,
					"voter %s is chained in bag %d but records bag %d", id, upper, node.BagUpper)
			}
			if !node.Prev.Equals(prev) {
				return true, errorsmod.Wrapf(types.ErrCorruptedList,
					"voter %s in bag %d has prev %s, expected %s", id, upper, node.Prev, prev)
			}

			reachable++
			prev = id
			id = node.Next
		}

		if !prev.Equals(bag.Tail) {
			return true, errorsmod.Wrapf(types.ErrCorruptedList, "bag %d ends at %s but its tail is %s", upper, prev, bag.Tail)
		}
		return false, nil
	})
	if err != nil {
		return err
	}

	if reachable != nodes {
		return errorsmod.Wrapf(types.ErrCorruptedList, "%d voters reachable from bags but %d nodes are stored", reachable, nodes)
	}

	return nil
}
