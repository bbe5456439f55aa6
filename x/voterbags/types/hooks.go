package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// VoterListHooks defines the interface that external modules can implement
// to react to voters moving between bags.
type VoterListHooks interface {
	// Triggered after a voter was moved from the bag with upper bound from to the bag with upper bound to
	AfterVoterRebagged(ctx context.Context, voter sdk.AccAddress, from, to uint64) error
}

// MultiVoterListHooks allows multiple modules to listen to the same events.
type MultiVoterListHooks []VoterListHooks

// NewMultiVoterListHooks creates a new combined hook instance.
func NewMultiVoterListHooks(hooks ...VoterListHooks) MultiVoterListHooks {
	return hooks
}

// AfterVoterRebagged calls every hook in the list, stopping at the first error.
func (mh MultiVoterListHooks) AfterVoterRebagged(ctx context.Context, voter sdk.AccAddress, from, to uint64) error {
	for _, h := range mh {
		if err := h.AfterVoterRebagged(ctx, voter, from, to); err != nil {
			return err
		}
	}
	return nil
}
