package types

import (
	"encoding/json"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// VoterType tells whether a voter takes part in elections as a validator or a nominator.
type VoterType uint8

const (
	VoterTypeUnspecified VoterType = iota
	VoterTypeValidator
	VoterTypeNominator
)

func (v VoterType) String() string {
	switch v {
	case VoterTypeValidator:
		return "validator"
	case VoterTypeNominator:
		return "nominator"
	default:
		return "unspecified"
	}
}

// Validate returns an error unless v is a validator or a nominator.
func (v VoterType) Validate() error {
	if v != VoterTypeValidator && v != VoterTypeNominator {
		return errorsmod.Wrapf(ErrInvalidVoterType, "unknown voter type %d", v)
	}
	return nil
}

// ParseVoterType parses "validator" or "nominator".
func ParseVoterType(s string) (VoterType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "validator":
		return VoterTypeValidator, nil
	case "nominator":
		return VoterTypeNominator, nil
	default:
		return VoterTypeUnspecified, errorsmod.Wrapf(ErrInvalidVoterType, "%q", s)
	}
}

func (v VoterType) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *VoterType) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		return err
	}
	parsed, err := ParseVoterType(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Node is a voter's entry in the list. Prev and Next link to the neighbours within the same bag and
// are empty at the ends of the bag.
//
// Nothing else records which bag a node belongs to: BagUpper is the bag the voter was last placed in,
// which is not necessarily the bag its current weight resolves to.
type Node struct {
	ID        sdk.AccAddress
	Prev      sdk.AccAddress
	Next      sdk.AccAddress
	BagUpper  uint64
	VoterType VoterType
}

// IsHead reports whether the node is the first of its bag.
func (n Node) IsHead() bool { return n.Prev.Empty() }

// IsTail reports whether the node is the last of its bag.
func (n Node) IsTail() bool { return n.Next.Empty() }

// IsMisplaced reports whether a voter of the given weight belongs in a different bag.
func (n Node) IsMisplaced(weight uint64, thresholds Thresholds) bool {
	return thresholds.NotionalBagFor(weight) != n.BagUpper
}

func (n Node) String() string {
	return fmt.Sprintf("Node{id: %s, type: %s, bag: %d, prev: %s, next: %s}",
		n.ID, n.VoterType, n.BagUpper, n.Prev, n.Next)
}
