package types

import (
	"cosmossdk.io/collections"
)

var (
	// CounterForVotersKey saves the number of voters in the list.
	CounterForVotersKey = collections.NewPrefix(0)

	// CounterForVotersName is the name of the voter counter.
	CounterForVotersName = "counter_for_voters"

	// VoterNodesKey is the key for the mapping of voter addresses to their list nodes.
	VoterNodesKey = collections.NewPrefix(1)

	// VoterNodesName is the name of the voter node mapping.
	VoterNodesName = "voter_nodes"

	// VoterBagForKey is the key for the mapping of voter addresses to the upper bound of their current bag.
	VoterBagForKey = collections.NewPrefix(2)

	// VoterBagForName is the name of the voter to bag mapping.
	VoterBagForName = "voter_bag_for"

	// VoterBagsKey is the key for the mapping of bag upper bounds to bags.
	VoterBagsKey = collections.NewPrefix(3)

	// VoterBagsName is the name of the bag mapping.
	VoterBagsName = "voter_bags"
)

const (
	ModuleName = "voterbags"

	StoreKey = ModuleName

	QuerierRoute = ModuleName
)
