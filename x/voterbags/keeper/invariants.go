package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

// RegisterInvariants registers the voter bags invariants.
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "bags-list", BagsListInvariant(k))
}

// BagsListInvariant checks that the voter list is structurally sound.
func BagsListInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if err := k.SanityCheck(ctx); err != nil {
			return sdk.FormatInvariant(types.ModuleName, "bags-list", err.Error()), true
		}

		count, err := k.Count(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "bags-list", err.Error()), true
		}

		return sdk.FormatInvariant(types.ModuleName, "bags-list",
			fmt.Sprintf("%d voters in a consistent list", count)), false
	}
}
