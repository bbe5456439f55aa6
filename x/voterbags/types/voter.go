package types

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// VoteWeightFn returns the current vote weight of a voter.
type VoteWeightFn func(ctx context.Context, voter sdk.AccAddress) (uint64, error)

// Movement describes a voter moving from one bag to another.
type Movement struct {
	From uint64
	To   uint64
}

func (m Movement) String() string {
	return fmt.Sprintf("%d -> %d", m.From, m.To)
}

// Voter is a voter together with its current weight, as handed to election snapshots.
type Voter struct {
	Address   sdk.AccAddress `json:"address"`
	VoterType VoterType      `json:"voter_type"`
	Weight    uint64         `json:"weight"`
}

// CurrencyToVote converts a token amount into a vote weight, saturating at MaxVoteWeight.
func CurrencyToVote(amount math.Int) uint64 {
	switch {
	case amount.IsNil() || !amount.IsPositive():
		return 0
	case !amount.IsUint64():
		return MaxVoteWeight
	default:
		return amount.Uint64()
	}
}
