package sandbox

import (
	"context"

	"github.com/pkg/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/voterbags/internal/ledger"
	"github.com/pushchain/voterbags/x/voterbags/types"
)

// VoterInfo is a stored voter together with its recorded stake.
type VoterInfo struct {
	Node      types.Node `json:"-"`
	Address   string     `json:"address"`
	VoterType string     `json:"voter_type"`
	BagUpper  uint64     `json:"bag_upper,string"`
	Weight    uint64     `json:"weight,string"`
	Misplaced bool       `json:"misplaced"`
}

// AddVoter inserts the voter into the list and records its stake.
func (s *Sandbox) AddVoter(voter sdk.AccAddress, voterType types.VoterType, weight uint64) error {
	if s.stale {
		return ErrThresholdsChanged
	}
	if err := voterType.Validate(); err != nil {
		return err
	}

	exists, err := s.keeper.Contains(s.context(), voter)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(types.ErrDuplicateVoter, "voter %s", voter)
	}

	// the stake is only recorded once the insert has gone through
	return s.exec(func(ctx sdk.Context) error {
		err := s.keeper.Insert(ctx, voter, voterType, func(context.Context, sdk.AccAddress) (uint64, error) {
			return weight, nil
		})
		if err != nil {
			return err
		}
		return s.ledger.SetWeight(ctx, voter, weight)
	})
}

// SetWeight records a new stake. With rebag set a listed voter is moved right away; otherwise it
// stays where it is until Rebag is called.
func (s *Sandbox) SetWeight(voter sdk.AccAddress, weight uint64, rebag bool) (*types.Movement, error) {
	if s.stale && rebag {
		return nil, ErrThresholdsChanged
	}

	if err := s.ledger.SetWeight(s.context(), voter, weight); err != nil {
		return nil, err
	}
	if !rebag {
		return nil, nil
	}
	return s.Rebag(voter)
}

// Rebag moves the voter into the bag its recorded stake resolves to.
func (s *Sandbox) Rebag(voter sdk.AccAddress) (*types.Movement, error) {
	var movement *types.Movement
	err := s.exec(func(ctx sdk.Context) error {
		var err error
		movement, err = s.keeper.Rebag(ctx, voter)
		return err
	})
	return movement, err
}

// RemoveVoter takes the voter out of the list and forgets its stake.
func (s *Sandbox) RemoveVoter(voter sdk.AccAddress) error {
	err := s.exec(func(ctx sdk.Context) error {
		return s.keeper.Remove(ctx, voter)
	})
	if err != nil {
		return err
	}
	return s.ledger.DeleteWeight(s.context(), voter)
}

// Voter returns a listed voter.
func (s *Sandbox) Voter(voter sdk.AccAddress) (VoterInfo, bool, error) {
	ctx := s.context()

	node, found, err := s.stored.GetNode(ctx, voter)
	if err != nil || !found {
		return VoterInfo{}, false, err
	}

	weight, _, err := s.ledger.Weight(ctx, voter)
	if err != nil {
		return VoterInfo{}, false, err
	}

	return VoterInfo{
		Node:      node,
		Address:   node.ID.String(),
		VoterType: node.VoterType.String(),
		BagUpper:  node.BagUpper,
		Weight:    weight,
		Misplaced: node.IsMisplaced(weight, s.keeper.Thresholds()),
	}, true, nil
}

// List returns up to limit voters in iteration order with their recorded stake. Zero lists all.
func (s *Sandbox) List(limit uint32) ([]types.Voter, error) {
	return s.stored.ElectionSnapshot(s.context(), limit)
}

// Stakes returns every recorded stake, including those of voters that are not listed.
func (s *Sandbox) Stakes() ([]ledger.VoterStake, error) {
	return s.ledger.Stakes(s.context())
}

// Bags describes the occupied bags.
func (s *Sandbox) Bags() ([]types.BagSummary, error) {
	return s.stored.BagSummaries(s.context())
}

// Count returns the number of listed voters.
func (s *Sandbox) Count() (uint64, error) {
	return s.stored.Count(s.context())
}

// Check verifies the structure of the stored list against the thresholds it is arranged by.
func (s *Sandbox) Check() error {
	return s.stored.SanityCheck(s.context())
}

// Migrate rearranges the list into the configured thresholds and records them. It returns the
// number of voters that changed bag; nothing happens when the thresholds did not change.
func (s *Sandbox) Migrate() (uint32, error) {
	if !s.stale {
		return 0, nil
	}

	var moved uint32
	s.stale = false
	err := s.exec(func(ctx sdk.Context) error {
		var err error
		if moved, err = s.keeper.Migrate(ctx, s.stored.Thresholds()); err != nil {
			return err
		}
		return s.keeper.SanityCheck(ctx)
	})
	if err != nil {
		s.stale = true
		return 0, err
	}

	if err := s.ledger.SetThresholds(s.context(), s.keeper.Thresholds()); err != nil {
		return moved, err
	}
	s.stored = s.keeper
	return moved, nil
}
