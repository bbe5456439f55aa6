package keeper

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

// Insert adds a voter at the tail of the bag its current weight resolves to.
//
// Inserting a voter that is already in the list fails with ErrDuplicateVoter and leaves the list
// untouched; callers that only want to refresh a position should use UpdatePositionFor. The empty
// address marks a missing link and is never a voter.
func (k Keeper) Insert(ctx context.Context, voter sdk.AccAddress, voterType types.VoterType, weightOf types.VoteWeightFn) error {
	if voter.Empty() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "empty voter address")
	}
	if err := voterType.Validate(); err != nil {
		return err
	}

	exists, err := k.VoterNodes.Has(ctx, voter)
	if err != nil {
		return err
	}
	if exists {
		return errorsmod.Wrapf(types.ErrDuplicateVoter, "voter %s", voter)
	}

	weight, err := weightOf(ctx, voter)
	if err != nil {
		return errorsmod.Wrapf(err, "failed to get weight of voter %s", voter)
	}

	count, err := k.Count(ctx)
	if err != nil {
		return err
	}

	node := types.Node{
		ID:        voter,
		BagUpper:  k.thresholds.NotionalBagFor(weight),
		VoterType: voterType,
	}
	if err := k.pushBack(ctx, node); err != nil {
		return err
	}

	return k.setCount(ctx, count+1)
}

// Remove takes a voter out of the list. Removing a voter that is not in the list is a no-op.
func (k Keeper) Remove(ctx context.Context, voter sdk.AccAddress) error {
	node, found, err := k.GetNode(ctx, voter)
	if err != nil || !found {
		return err
	}

	count, err := k.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		return errorsmod.Wrapf(types.ErrCorruptedList, "voter %s is stored but the counter is zero", voter)
	}

	if err := k.unlink(ctx, node); err != nil {
		return err
	}
	if err := k.VoterNodes.Remove(ctx, voter); err != nil {
		return err
	}
	if err := k.VoterBagFor.Remove(ctx, voter); err != nil {
		return err
	}

	return k.setCount(ctx, count-1)
}

// UpdatePositionFor moves the node into the bag its current weight resolves to.
//
// It returns nil without touching the store when the voter already sits in the right bag. Otherwise
// the voter is appended to the tail of its new bag and the movement is returned.
func (k Keeper) UpdatePositionFor(ctx context.Context, node types.Node, weightOf types.VoteWeightFn) (*types.Movement, error) {
	weight, err := weightOf(ctx, node.ID)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "failed to get weight of voter %s", node.ID)
	}

	return k.relocate(ctx, node, k.thresholds.NotionalBagFor(weight))
}

func (k Keeper) relocate(ctx context.Context, node types.Node, upper uint64) (*types.Movement, error) {
	if node.BagUpper == upper {
		return nil, nil
	}

	movement := &types.Movement{From: node.BagUpper, To: upper}

	if err := k.unlink(ctx, node); err != nil {
		return nil, err
	}

	node.BagUpper = upper
	if err := k.pushBack(ctx, node); err != nil {
		return nil, err
	}

	return movement, nil
}

// pushBack appends the node to the tail of the bag node.BagUpper, creating the bag if needed, and
// stores the node and its bag index entry. The node's own links are overwritten.
func (k Keeper) pushBack(ctx context.Context, node types.Node) error {
	bag, found, err := k.GetBag(ctx, node.BagUpper)
	if err != nil {
		return err
	}
	if !found {
		bag = types.Bag{BagUpper: node.BagUpper}
	}

	node.Prev = bag.Tail
	node.Next = nil

	if !bag.Tail.Empty() {
		tail, err := k.mustGetNode(ctx, bag.Tail, fmt.Sprintf("tail of bag %d", bag.BagUpper))
		if err != nil {
			return err
		}
		tail.Next = node.ID
		if err := k.VoterNodes.Set(ctx, tail.ID, tail); err != nil {
			return err
		}
	}

	if bag.Head.Empty() {
		bag.Head = node.ID
	}
	bag.Tail = node.ID

	if err := k.VoterNodes.Set(ctx, node.ID, node); err != nil {
		return err
	}
	if err := k.VoterBagFor.Set(ctx, node.ID, node.BagUpper); err != nil {
		return err
	}
	return k.VoterBags.Set(ctx, bag.BagUpper, bag)
}

// unlink detaches the node from its neighbours and its bag, deleting the bag once it is empty.
// The node record itself is left for the caller to rewrite or delete.
func (k Keeper) unlink(ctx context.Context, node types.Node) error {
	if !node.Prev.Empty() {
		prev, err := k.mustGetNode(ctx, node.Prev, "prev of "+node.ID.String())
		if err != nil {
			return err
		}
		prev.Next = node.Next
		if err := k.VoterNodes.Set(ctx, prev.ID, prev); err != nil {
			return err
		}
	}

	if !node.Next.Empty() {
		next, err := k.mustGetNode(ctx, node.Next, "next of "+node.ID.String())
		if err != nil {
			return err
		}
		next.Prev = node.Prev
		if err := k.VoterNodes.Set(ctx, next.ID, next); err != nil {
			return err
		}
	}

	bag, found, err := k.GetBag(ctx, node.BagUpper)
	if err != nil {
		return err
	}
	if !found {
		return errorsmod.Wrapf(types.ErrCorruptedList, "voter %s refers to missing bag %d", node.ID, node.BagUpper)
	}

	if bag.Head.Equals(node.ID) {
		bag.Head = node.Next
	}
	if bag.Tail.Equals(node.ID) {
		bag.Tail = node.Prev
	}

	if bag.IsEmpty() {
		return k.VoterBags.Remove(ctx, bag.BagUpper)
	}
	return k.VoterBags.Set(ctx, bag.BagUpper, bag)
}

// mustGetNode loads a node that a link points to. A missing node means the list is corrupted.
func (k Keeper) mustGetNode(ctx context.Context, voter sdk.AccAddress, linkedFrom string) (types.Node, error) {
	node, found, err := k.GetNode(ctx, voter)
	if err != nil {
		return types.Node{}, err
	}
	if !found {
		return types.Node{}, errorsmod.Wrapf(types.ErrCorruptedList, "missing node %s linked as %s", voter, linkedFrom)
	}
	return node, nil
}
