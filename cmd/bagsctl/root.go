package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/voterbags/internal/config"
	"github.com/pushchain/voterbags/internal/logger"
	"github.com/pushchain/voterbags/internal/sandbox"
)

const (
	flagHome   = "home"
	flagOutput = "output"
)

// defaultHome is $BAGSCTL_HOME, falling back to ~/.bagsctl.
func defaultHome() string {
	if home := os.Getenv("BAGSCTL_HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bagsctl"
	}
	return filepath.Join(home, ".bagsctl")
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bagsctl",
		Short:         "Maintain a local voter bags list",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(flagHome, defaultHome(), "directory holding config.yaml and the list data")
	rootCmd.PersistentFlags().StringP(flagOutput, "o", "text", "output format: text|json")

	InitRootCmd(rootCmd)

	return rootCmd
}

func homeDir(cmd *cobra.Command) string {
	home, _ := cmd.Flags().GetString(flagHome)
	return home
}

func printerFor(cmd *cobra.Command) (Printer, error) {
	output, _ := cmd.Flags().GetString(flagOutput)
	if output != "text" && output != "json" {
		return Printer{}, errors.Errorf("unsupported output format %q, use text or json", output)
	}
	return NewPrinter(cmd.OutOrStdout(), output), nil
}

// withSandbox opens the sandbox configured under --home for the duration of fn.
func withSandbox(cmd *cobra.Command, fn func(s *sandbox.Sandbox, p Printer) error) (err error) {
	p, err := printerFor(cmd)
	if err != nil {
		return err
	}

	home := homeDir(cmd)
	cfg, err := config.Load(home)
	if err != nil {
		return err
	}
	thresholds, err := cfg.ParsedThresholds()
	if err != nil {
		return err
	}

	zl := logger.Init(cfg).With().Str("component", "bagsctl").Logger()
	s, err := sandbox.Open(sandbox.Options{
		Dir:        cfg.DataPath(home),
		Backend:    cfg.DBBackend,
		Thresholds: thresholds,
		Logger:     log.NewCustomLogger(zl),
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(s, p)
}

func parseAddress(s string) (sdk.AccAddress, error) {
	addr, err := sdk.AccAddressFromBech32(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid address %q", s)
	}
	return addr, nil
}
