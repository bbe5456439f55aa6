package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pushchain/voterbags/internal/sandbox"
	"github.com/pushchain/voterbags/x/voterbags/types"
)

// moveResult reports the outcome of a rebag.
type moveResult struct {
	Address string `json:"address"`
	Moved   bool   `json:"moved"`
	From    uint64 `json:"from,string"`
	To      uint64 `json:"to,string"`
}

func newMoveResult(address string, m *types.Movement) moveResult {
	res := moveResult{Address: address}
	if m != nil {
		res.Moved, res.From, res.To = true, m.From, m.To
	}
	return res
}

func (r moveResult) print(p Printer) error {
	return p.Print(r, func() {
		if r.Moved {
			p.Textf("%s moved from bag %d to bag %d\n", r.Address, r.From, r.To)
		} else {
			p.Textf("%s stays in its bag\n", r.Address)
		}
	})
}

func parseWeight(s string) (uint64, error) {
	w, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid weight %q", s)
	}
	return w, nil
}

func voterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voter",
		Short: "Add, update, inspect and remove voters",
	}
	cmd.AddCommand(
		voterAddCmd(),
		voterSetWeightCmd(),
		voterShowCmd(),
		voterRemoveCmd(),
	)
	return cmd
}

func voterAddCmd() *cobra.Command {
	var voterType string

	cmd := &cobra.Command{
		Use:   "add [address] [weight]",
		Short: "Record a voter's stake and insert it into the list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			voter, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			weight, err := parseWeight(args[1])
			if err != nil {
				return err
			}
			vt, err := types.ParseVoterType(voterType)
			if err != nil {
				return err
			}

			return withSandbox(cmd, func(s *sandbox.Sandbox, p Printer) error {
				if err := s.AddVoter(voter, vt, weight); err != nil {
					return err
				}
				info, _, err := s.Voter(voter)
				if err != nil {
					return err
				}
				return p.Print(info, func() {
					p.Textf("added %s %s to bag %d\n", info.VoterType, info.Address, info.BagUpper)
				})
			})
		},
	}

	cmd.Flags().StringVar(&voterType, "type", types.VoterTypeNominator.String(), "voter type: validator|nominator")
	return cmd
}

func voterSetWeightCmd() *cobra.Command {
	var rebag bool

	cmd := &cobra.Command{
		Use:   "set-weight [address] [weight]",
		Short: "Record a new stake for a voter",
		Long: `Record a new stake for a voter. The voter keeps its bag until it is rebagged, either with
--rebag or later with "bagsctl rebag".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			voter, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			weight, err := parseWeight(args[1])
			if err != nil {
				return err
			}

			return withSandbox(cmd, func(s *sandbox.Sandbox, p Printer) error {
				m, err := s.SetWeight(voter, weight, rebag)
				if err != nil {
					return err
				}
				if !rebag {
					return p.Print(map[string]string{"address": voter.String(), "weight": args[1]}, func() {
						p.Textf("recorded weight %d for %s\n", weight, voter)
					})
				}
				return newMoveResult(voter.String(), m).print(p)
			})
		},
	}

	cmd.Flags().BoolVar(&rebag, "rebag", false, "move the voter into its new bag right away")
	return cmd
}

func voterShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [address]",
		Short: "Show a listed voter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			voter, err := parseAddress(args[0])
			if err != nil {
				return err
			}

			return withSandbox(cmd, func(s *sandbox.Sandbox, p Printer) error {
				info, found, err := s.Voter(voter)
				if err != nil {
					return err
				}
				if !found {
					return errors.Errorf("voter %s is not listed", voter)
				}
				return p.Print(info, func() {
					p.Textf("address:   %s\n", info.Address)
					p.Textf("type:      %s\n", info.VoterType)
					p.Textf("weight:    %d\n", info.Weight)
					p.Textf("bag:       %d\n", info.BagUpper)
					p.Textf("misplaced: %t\n", info.Misplaced)
					p.Textf("prev:      %s\n", info.Node.Prev)
					p.Textf("next:      %s\n", info.Node.Next)
				})
			})
		},
	}
}

func voterRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [address]",
		Short: "Remove a voter from the list and forget its stake",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			voter, err := parseAddress(args[0])
			if err != nil {
				return err
			}

			return withSandbox(cmd, func(s *sandbox.Sandbox, p Printer) error {
				if err := s.RemoveVoter(voter); err != nil {
					return err
				}
				return p.Print(map[string]string{"removed": voter.String()}, func() {
					p.Textf("removed %s\n", voter)
				})
			})
		},
	}
}

func rebagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebag [address]",
		Short: "Move a voter into the bag its recorded stake belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			voter, err := parseAddress(args[0])
			if err != nil {
				return err
			}

			return withSandbox(cmd, func(s *sandbox.Sandbox, p Printer) error {
				m, err := s.Rebag(voter)
				if err != nil {
					return err
				}
				return newMoveResult(voter.String(), m).print(p)
			})
		},
	}
}
