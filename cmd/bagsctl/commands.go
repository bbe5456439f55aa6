package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	sdkversion "github.com/cosmos/cosmos-sdk/version"

	"github.com/pushchain/voterbags/internal/config"
	"github.com/pushchain/voterbags/x/voterbags/types"
)

func InitRootCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(
		voterCmd(),
		rebagCmd(),
		listCmd(),
		bagsCmd(),
		stakesCmd(),
		statusCmd(),
		checkCmd(),
		migrateCmd(),
		makeBagsCmd(),
		configCmd(),
		versionCmd(),
	)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print bagsctl version info",
		Run: func(cmd *cobra.Command, args []string) {
			p := NewPrinter(cmd.OutOrStdout(), "text")
			p.Textf("Name:       %s\n", sdkversion.Name)
			p.Textf("App Name:   %s\n", sdkversion.AppName)
			p.Textf("Version:    %s\n", sdkversion.Version)
			p.Textf("Commit:     %s\n", sdkversion.Commit)
			p.Textf("Build Tags: %s\n", sdkversion.BuildTags)
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the bagsctl configuration",
	}
	cmd.AddCommand(configInitCmd(), configShowCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var (
		force      bool
		thresholds string
		backend    string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml into the home directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := printerFor(cmd)
			if err != nil {
				return err
			}

			home := homeDir(cmd)
			path := filepath.Join(home, "config.yaml")
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Errorf("%s already exists, use --force to overwrite", path)
			}

			cfg := config.Default()
			if thresholds != "" {
				cfg.Thresholds = thresholds
			}
			if backend != "" {
				cfg.DBBackend = backend
			}
			if err := config.Save(&cfg, home); err != nil {
				return err
			}

			return p.Print(cfg, func() { p.Textf("wrote %s\n", path) })
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.Flags().StringVar(&thresholds, "thresholds", "", "comma separated bag thresholds")
	cmd.Flags().StringVar(&backend, "db-backend", "", "store backend: goleveldb|memdb")
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := printerFor(cmd)
			if err != nil {
				return err
			}

			home := homeDir(cmd)
			cfg, err := config.Load(home)
			if err != nil {
				return err
			}

			return p.Print(cfg, func() {
				p.Textf("log_level:   %d\n", cfg.LogLevel)
				p.Textf("log_format:  %s\n", cfg.LogFormat)
				p.Textf("log_sampler: %t\n", cfg.LogSampler)
				p.Textf("thresholds:  %s\n", cfg.Thresholds)
				p.Textf("db_backend:  %s\n", cfg.DBBackend)
				p.Textf("data_dir:    %s\n", cfg.DataPath(home))
			})
		},
	}
}

func makeBagsCmd() *cobra.Command {
	var (
		existential uint64
		maxWeight   uint64
		count       int
		write       bool
	)

	cmd := &cobra.Command{
		Use:   "make-bags",
		Short: "Generate geometrically spaced bag thresholds",
		Long: `Generate count thresholds from the existential weight up to the max weight, each one a constant
ratio above the previous (at least one higher). With --write the thresholds are stored in config.yaml;
run "bagsctl migrate" afterwards to rearrange an existing list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := printerFor(cmd)
			if err != nil {
				return err
			}

			thresholds, err := types.GeometricThresholds(existential, maxWeight, count)
			if err != nil {
				return err
			}

			if write {
				home := homeDir(cmd)
				cfg, err := config.Load(home)
				if err != nil {
					return err
				}
				cfg.Thresholds = thresholds.String()
				if err := config.Save(&cfg, home); err != nil {
					return err
				}
			}

			return p.Print(thresholds, func() {
				for i, t := range thresholds {
					p.Textf("%3d  %d\n", i, t)
				}
			})
		},
	}

	cmd.Flags().Uint64Var(&existential, "existential", 1, "lowest threshold")
	cmd.Flags().Uint64Var(&maxWeight, "max", types.MaxVoteWeight, "highest threshold")
	cmd.Flags().IntVar(&count, "count", 200, "number of thresholds")
	cmd.Flags().BoolVar(&write, "write", false, "store the thresholds in config.yaml")
	return cmd
}
