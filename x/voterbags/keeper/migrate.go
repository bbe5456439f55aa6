package keeper

import (
	"context"
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/telemetry"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

// Migrate rearranges the list after the thresholds changed from previous to the keeper's current
// thresholds, and returns how many voters changed bag.
//
// Only bags whose band is not preserved by the new thresholds are visited. Nodes do not record a
// weight, so the weight of every voter in those bags is read from the keeper's weight oracle. All
// weights are read before the first write.
func (k Keeper) Migrate(ctx context.Context, previous types.Thresholds) (uint32, error) {
	return k.MigrateWith(ctx, previous, k.weightOf)
}

// MigrateWith is Migrate with an explicit weight oracle.
func (k Keeper) MigrateWith(ctx context.Context, previous types.Thresholds, weightOf types.VoteWeightFn) (uint32, error) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), "migrate")

	if err := previous.Validate(); err != nil {
		return 0, errorsmod.Wrap(err, "previous thresholds")
	}

	type pending struct {
		voter sdk.AccAddress
		upper uint64
	}
	var moves []pending

	count, err := k.Count(ctx)
	if err != nil {
		return 0, err
	}

	oldUppers := previous.Uppers()
	for i, upper := range oldUppers {
		var lowest uint64
		if i > 0 {
			lowest = oldUppers[i-1] + 1
		}
		// every weight in [lowest, upper] still resolves to upper: nobody in this bag moves
		if k.thresholds.NotionalBagFor(lowest) == upper {
			continue
		}

		bag, found, err := k.GetBag(ctx, upper)
		if err != nil {
			return 0, err
		}
		if !found {
			continue
		}

		for id := bag.Head; !id.Empty(); {
			node, err := k.mustGetNode(ctx, id, fmt.Sprintf("member of bag %d", upper))
			if err != nil {
				return 0, err
			}
			weight, err := weightOf(ctx, id)
			if err != nil {
				return 0, errorsmod.Wrapf(err, "failed to get weight of voter %s", id)
			}
			moves = append(moves, pending{voter: id, upper: k.thresholds.NotionalBagFor(weight)})
			if uint64(len(moves)) > count {
				return 0, errorsmod.Wrapf(types.ErrCorruptedList, "bag %d holds more voters than the list", upper)
			}
			id = node.Next
		}
	}

	var moved uint32
	for _, m := range moves {
		// re-read: earlier moves rewrote the links of this node
		node, err := k.mustGetNode(ctx, m.voter, "migrating voter")
		if err != nil {
			return moved, err
		}
		movement, err := k.relocate(ctx, node, m.upper)
		if err != nil {
			return moved, err
		}
		if movement != nil {
			moved++
		}
	}

	k.Logger().Info("voter bags migrated",
		"previous", previous.String(),
		"current", k.thresholds.String(),
		"visited", len(moves),
		"moved", moved,
	)

	return moved, nil
}
