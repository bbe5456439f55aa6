package keeper

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/core/store"
	"cosmossdk.io/log"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

type Keeper struct {
	logger        log.Logger
	schemaBuilder *collections.SchemaBuilder

	// bag upper bounds the list is currently arranged by
	thresholds types.Thresholds

	// List state
	CounterForVoters collections.Item[uint64]                      // number of voters in the list
	VoterNodes       collections.Map[sdk.AccAddress, types.Node] // voter → node with links inside its bag
	VoterBagFor      collections.Map[sdk.AccAddress, uint64]     // voter → upper bound of the bag holding it
	VoterBags        collections.Map[uint64, types.Bag]          // bag upper bound → head and tail of the bag

	weightOf      types.VoteWeightFn
	stakingKeeper types.StakingKeeper
	hooks         types.VoterListHooks
}

// NewKeeper creates a new Keeper instance. weightOf is the weight oracle used by Rebag, genesis and
// the staking hooks. stakingKeeper is only needed when the staking hooks are installed.
//
// It panics if the thresholds are not strictly increasing.
func NewKeeper(
	storeService storetypes.KVStoreService,
	logger log.Logger,
	thresholds types.Thresholds,
	weightOf types.VoteWeightFn,
	stakingKeeper types.StakingKeeper,
) Keeper {
	if err := thresholds.Validate(); err != nil {
		panic(fmt.Errorf("voter bag thresholds: %w", err))
	}
	if weightOf == nil {
		panic("voter bags keeper requires a vote weight function")
	}

	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger:        logger,
		schemaBuilder: sb,
		thresholds:    append(types.Thresholds(nil), thresholds...),

		CounterForVoters: collections.NewItem(sb, types.CounterForVotersKey, types.CounterForVotersName, collections.Uint64Value),
		VoterNodes: collections.NewMap(
			sb, types.VoterNodesKey, types.VoterNodesName,
			sdk.AccAddressKey, types.NodeValueCodec,
		),
		VoterBagFor: collections.NewMap(
			sb, types.VoterBagForKey, types.VoterBagForName,
			sdk.AccAddressKey, collections.Uint64Value,
		),
		VoterBags: collections.NewMap(
			sb, types.VoterBagsKey, types.VoterBagsName,
			collections.Uint64Key, types.BagValueCodec,
		),

		weightOf:      weightOf,
		stakingKeeper: stakingKeeper,
	}

	return k
}

func (k Keeper) Logger() log.Logger {
	return k.logger
}

func (k Keeper) SchemaBuilder() *collections.SchemaBuilder {
	return k.schemaBuilder
}

// Thresholds returns the bag upper bounds the keeper arranges voters by.
func (k Keeper) Thresholds() types.Thresholds {
	return append(types.Thresholds(nil), k.thresholds...)
}

// WeightOf returns the keeper's weight oracle.
func (k Keeper) WeightOf() types.VoteWeightFn {
	return k.weightOf
}

// SetHooks sets the voter list hooks. It can only be called once.
func (k *Keeper) SetHooks(h types.VoterListHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set voter list hooks twice")
	}
	k.hooks = h
	return k
}

// Count returns the number of voters in the list.
func (k Keeper) Count(ctx context.Context) (uint64, error) {
	count, err := k.CounterForVoters.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

func (k Keeper) setCount(ctx context.Context, count uint64) error {
	if count == 0 {
		return k.CounterForVoters.Remove(ctx)
	}
	return k.CounterForVoters.Set(ctx, count)
}

// GetNode returns the list node of a voter.
// Returns (node, true, nil) if found, (Node{}, false, nil) if not found, or error if something goes wrong.
func (k Keeper) GetNode(ctx context.Context, voter sdk.AccAddress) (types.Node, bool, error) {
	node, err := k.VoterNodes.Get(ctx, voter)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Node{}, false, nil
		}
		return types.Node{}, false, err
	}
	return node, true, nil
}

// GetBag returns the bag with the given upper bound. Empty bags are never stored.
func (k Keeper) GetBag(ctx context.Context, upper uint64) (types.Bag, bool, error) {
	bag, err := k.VoterBags.Get(ctx, upper)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Bag{}, false, nil
		}
		return types.Bag{}, false, err
	}
	return bag, true, nil
}

// Contains reports whether the voter is in the list.
func (k Keeper) Contains(ctx context.Context, voter sdk.AccAddress) (bool, error) {
	return k.VoterNodes.Has(ctx, voter)
}
