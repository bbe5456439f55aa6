package v2

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/voterbags/x/voterbags/keeper"
	"github.com/pushchain/voterbags/x/voterbags/types"
)

// MigrateThresholds rearranges the voter list, built under the previous thresholds, into the bags
// of the keeper's current thresholds. The list must be consistent afterwards.
func MigrateThresholds(ctx sdk.Context, k *keeper.Keeper, previous types.Thresholds) error {
	if previous.Equal(k.Thresholds()) {
		ctx.Logger().Info("voter bag thresholds unchanged, nothing to migrate")
		return nil
	}

	moved, err := k.Migrate(ctx, previous)
	if err != nil {
		return err
	}

	if err := k.SanityCheck(ctx); err != nil {
		return err
	}

	ctx.Logger().Info("voter bags migrated to new thresholds", "moved", moved)
	return nil
}
