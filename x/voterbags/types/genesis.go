package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisVoter is a voter listed in genesis. Its weight is read when the chain starts.
type GenesisVoter struct {
	Address   string    `json:"address"`
	VoterType VoterType `json:"voter_type"`
}

// GenesisState lists the voters in iteration order.
type GenesisState struct {
	Voters []GenesisVoter `json:"voters"`
}

// DefaultGenesis returns an empty voter list.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Voters: []GenesisVoter{}}
}

// Validate checks addresses, voter types and duplicates.
func (gs GenesisState) Validate() error {
	seen := make(map[string]struct{}, len(gs.Voters))
	for i, v := range gs.Voters {
		addr, err := sdk.AccAddressFromBech32(v.Address)
		if err != nil {
			return errorsmod.Wrapf(ErrInvalidGenesis, "voter %d: invalid address %q: %s", i, v.Address, err)
		}
		if err := v.VoterType.Validate(); err != nil {
			return errorsmod.Wrapf(ErrInvalidGenesis, "voter %d (%s): %s", i, v.Address, err)
		}
		if _, dup := seen[string(addr)]; dup {
			return errorsmod.Wrapf(ErrInvalidGenesis, "voter %s listed twice", v.Address)
		}
		seen[string(addr)] = struct{}{}
	}
	return nil
}
