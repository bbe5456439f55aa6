package types

import (
	"encoding/json"
	fmt "fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	EventTypeVoterRebagged = "voter_rebagged"

	AttributeKeyVoter = "voter"
	AttributeKeyFrom  = "from"
	AttributeKeyTo    = "to"
)

// VoterRebaggedEvent is emitted when a voter moves from one bag to another.
type VoterRebaggedEvent struct {
	Voter string `json:"voter"`
	From  uint64 `json:"from,string"`
	To    uint64 `json:"to,string"`
}

// NewVoterRebaggedEvent creates and returns a Cosmos SDK event
func NewVoterRebaggedEvent(e VoterRebaggedEvent) (sdk.Event, error) {
	bz, err := json.Marshal(e)
	if err != nil {
		return sdk.Event{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	event := sdk.NewEvent(
		EventTypeVoterRebagged,
		sdk.NewAttribute(AttributeKeyVoter, e.Voter),
		sdk.NewAttribute(AttributeKeyFrom, strconv.FormatUint(e.From, 10)),
		sdk.NewAttribute(AttributeKeyTo, strconv.FormatUint(e.To, 10)),
		sdk.NewAttribute("data", string(bz)), // full JSON payload for off-chain consumption
	)

	return event, nil
}

// String returns a readable log for CLI
func (e VoterRebaggedEvent) String() string {
	return fmt.Sprintf("Voter rebagged | Voter: %s | From: %d | To: %d", e.Voter, e.From, e.To)
}
