package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pushchain/voterbags/internal/sandbox"
	"github.com/pushchain/voterbags/x/voterbags/types"
)

func listCmd() *cobra.Command {
	var limit uint32

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List voters in iteration order, heaviest bag first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSandbox(cmd, func(s *sandbox.Sandbox, p Printer) error {
				voters, err := s.List(limit)
				if err != nil {
					return err
				}
				return p.Print(voters, func() {
					rows := make([][]string, len(voters))
					for i, v := range voters {
						rows[i] = []string{
							strconv.Itoa(i + 1),
							v.Address.String(),
							v.VoterType.String(),
							strconv.FormatUint(v.Weight, 10),
						}
					}
					p.Table([]string{"#", "ADDRESS", "TYPE", "WEIGHT"}, rows)
				})
			})
		},
	}

	cmd.Flags().Uint32Var(&limit, "limit", 0, "maximum number of voters, 0 lists all")
	return cmd
}

func bagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bags",
		Short: "Show the occupied bags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSandbox(cmd, func(s *sandbox.Sandbox, p Printer) error {
				bags, err := s.Bags()
				if err != nil {
					return err
				}
				return p.Print(bags, func() {
					rows := make([][]string, len(bags))
					for i, b := range bags {
						rows[i] = []string{
							strconv.FormatUint(b.BagUpper, 10),
							strconv.FormatUint(b.Count, 10),
							b.Head.String(),
							b.Tail.String(),
						}
					}
					p.Table([]string{"UPPER", "VOTERS", "HEAD", "TAIL"}, rows)
				})
			})
		},
	}
}

type stakeResult struct {
	Address   string    `json:"address"`
	Weight    string    `json:"weight"`
	UpdatedAt time.Time `json:"updated_at"`
}

func stakesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stakes",
		Short: "Show every recorded stake, listed or not",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSandbox(cmd, func(s *sandbox.Sandbox, p Printer) error {
				stakes, err := s.Stakes()
				if err != nil {
					return err
				}

				res := make([]stakeResult, len(stakes))
				for i, st := range stakes {
					res[i] = stakeResult{Address: st.Address, Weight: st.Weight, UpdatedAt: st.UpdatedAt}
				}
				return p.Print(res, func() {
					rows := make([][]string, len(res))
					for i, r := range res {
						rows[i] = []string{r.Address, r.Weight, r.UpdatedAt.Format(time.RFC3339)}
					}
					p.Table([]string{"ADDRESS", "WEIGHT", "UPDATED"}, rows)
				})
			})
		},
	}
}

type statusResult struct {
	Count      uint64           `json:"count,string"`
	Thresholds types.Thresholds `json:"thresholds"`
	Stored     types.Thresholds `json:"stored_thresholds,omitempty"`
	Stale      bool             `json:"migration_pending"`
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the voter count and the thresholds in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSandbox(cmd, func(s *sandbox.Sandbox, p Printer) error {
				count, err := s.Count()
				if err != nil {
					return err
				}

				configured, stored, stale := s.Thresholds()
				res := statusResult{Count: count, Thresholds: configured, Stale: stale}
				if stale {
					res.Stored = stored
				}

				return p.Print(res, func() {
					p.Textf("voters:     %d\n", res.Count)
					p.Textf("thresholds: %s\n", res.Thresholds)
					if res.Stale {
						p.Textf("stored:     %s (run migrate)\n", res.Stored)
					}
				})
			})
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the structure of the stored list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSandbox(cmd, func(s *sandbox.Sandbox, p Printer) error {
				if err := s.Check(); err != nil {
					return err
				}
				count, err := s.Count()
				if err != nil {
					return err
				}
				return p.Print(map[string]any{"ok": true, "count": count}, func() {
					p.Textf("ok: %d voters in a consistent list\n", count)
				})
			})
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Rearrange the list after the configured thresholds changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSandbox(cmd, func(s *sandbox.Sandbox, p Printer) error {
				_, stored, stale := s.Thresholds()
				moved, err := s.Migrate()
				if err != nil {
					return err
				}

				res := map[string]any{"migrated": stale, "moved": moved}
				return p.Print(res, func() {
					if !stale {
						p.Textf("thresholds unchanged, nothing to migrate\n")
						return
					}
					p.Textf("migrated from %s: %d voters changed bag\n", stored, moved)
				})
			})
		},
	}
}
