package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

// VoterIterator walks the list lazily: bags from the highest upper bound to the lowest, and each bag
// from head to tail. Nodes are read from the store one at a time, so stopping early costs nothing.
//
//	it := k.Iterator(ctx)
//	for ; it.Valid(); it.Next() {
//		node := it.Value()
//	}
//	if err := it.Error(); err != nil { ... }
//
// The iterator must not be used across writes to the list.
type VoterIterator struct {
	ctx    context.Context
	k      Keeper
	uppers []uint64 // bags still to visit, descending
	budget uint64   // voters left before the iteration exceeds the population

	node  types.Node
	valid bool
	err   error
}

// Iterator returns an iterator positioned on the first voter of the list.
func (k Keeper) Iterator(ctx context.Context) *VoterIterator {
	uppers := k.thresholds.Uppers()
	for i, j := 0, len(uppers)-1; i < j; i, j = i+1, j-1 {
		uppers[i], uppers[j] = uppers[j], uppers[i]
	}

	it := &VoterIterator{ctx: ctx, k: k, uppers: uppers}

	count, err := k.Count(ctx)
	if err != nil {
		it.fail(err)
		return it
	}
	it.budget = count

	it.nextBag()
	return it
}

// Valid reports whether the iterator is positioned on a voter.
func (it *VoterIterator) Valid() bool { return it.valid }

// Value returns the current voter's node.
func (it *VoterIterator) Value() types.Node { return it.node }

// Error returns the error that stopped the iteration, if any.
func (it *VoterIterator) Error() error { return it.err }

// Next advances to the next voter.
func (it *VoterIterator) Next() {
	if !it.valid {
		return
	}
	if !it.node.Next.Empty() {
		it.load(it.node.Next)
		return
	}
	it.nextBag()
}

func (it *VoterIterator) nextBag() {
	for len(it.uppers) > 0 {
		upper := it.uppers[0]
		it.uppers = it.uppers[1:]

		bag, found, err := it.k.GetBag(it.ctx, upper)
		if err != nil {
			it.fail(err)
			return
		}
		if !found {
			continue
		}
		it.load(bag.Head)
		return
	}
	it.valid = false
}

func (it *VoterIterator) load(voter sdk.AccAddress) {
	if it.budget == 0 {
		it.fail(errorsmod.Wrapf(types.ErrCorruptedList, "iteration reached %s after visiting every counted voter", voter))
		return
	}
	it.budget--

	node, found, err := it.k.GetNode(it.ctx, voter)
	if err != nil {
		it.fail(err)
		return
	}
	if !found {
		it.fail(errorsmod.Wrapf(types.ErrCorruptedList, "iteration reached missing voter %s", voter))
		return
	}
	it.node = node
	it.valid = true
}

func (it *VoterIterator) fail(err error) {
	it.err = err
	it.valid = false
	it.uppers = nil
}

// Walk calls cb for every voter in iteration order until cb returns stop == true or an error.
func (k Keeper) Walk(ctx context.Context, cb func(node types.Node) (stop bool, err error)) error {
	it := k.Iterator(ctx)
	for ; it.Valid(); it.Next() {
		stop, err := cb(it.Value())
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	return it.Error()
}

// GetVoters returns up to limit voters in iteration order. A limit of zero returns every voter.
func (k Keeper) GetVoters(ctx context.Context, limit uint32) ([]types.Node, error) {
	var nodes []types.Node

	err := k.Walk(ctx, func(node types.Node) (bool, error) {
		nodes = append(nodes, node)
		return limit > 0 && uint32(len(nodes)) >= limit, nil
	})
	if err != nil {
		return nil, err
	}

	return nodes, nil
}
