package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Bag holds the ends of the chain of voters whose weight falls into one band. A bag is only stored
// while it holds at least one voter.
type Bag struct {
	BagUpper uint64
	Head     sdk.AccAddress
	Tail     sdk.AccAddress
}

// IsEmpty reports whether the bag holds no voters.
func (b Bag) IsEmpty() bool {
	return b.Head.Empty() && b.Tail.Empty()
}

func (b Bag) String() string {
	return fmt.Sprintf("Bag{upper: %d, head: %s, tail: %s}", b.BagUpper, b.Head, b.Tail)
}

// BagSummary describes an occupied bag for queries.
type BagSummary struct {
	BagUpper uint64         `json:"bag_upper"`
	Count    uint64         `json:"count"`
	Head     sdk.AccAddress `json:"head"`
	Tail     sdk.AccAddress `json:"tail"`
}
