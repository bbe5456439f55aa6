package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

// InitGenesis inserts the genesis voters in the listed order, placing each by its current weight.
func (k *Keeper) InitGenesis(ctx context.Context, data *types.GenesisState) error {
	if err := data.Validate(); err != nil {
		return err
	}

	for _, v := range data.Voters {
		voter, err := sdk.AccAddressFromBech32(v.Address)
		if err != nil {
			return err
		}
		if err := k.Insert(ctx, voter, v.VoterType, k.weightOf); err != nil {
			return err
		}
	}

	count, err := k.Count(ctx)
	if err != nil {
		return err
	}
	k.Logger().Info("voter list initialized", "voters", count, "thresholds", k.thresholds.String())

	return nil
}

// ExportGenesis exports the voters in iteration order.
func (k *Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	nodes, err := k.GetVoters(ctx, 0)
	if err != nil {
		panic(err)
	}

	voters := make([]types.GenesisVoter, 0, len(nodes))
	for _, node := range nodes {
		voters = append(voters, types.GenesisVoter{
			Address:   node.ID.String(),
			VoterType: node.VoterType,
		})
	}

	return &types.GenesisState{Voters: voters}
}
