package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/joho/godotenv"

	"github.com/pushchain/voterbags/internal/sandbox"
	"github.com/pushchain/voterbags/x/voterbags/types"
)

// Exit codes beyond 1 let scripts around `bagsctl check` and `bagsctl migrate` tell a broken list
// from a bad invocation.
const (
	exitFailure          = 1
	exitCorruptedList    = 2
	exitThresholdsChange = 3
)

func main() {
	// BAGSCTL_* settings, BAGSCTL_HOME included, may come from a .env in the working directory
	_ = godotenv.Load()

	setupSDKConfig()

	rootCmd := NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.OutOrStderr(), err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrCorruptedList):
		return exitCorruptedList
	case errors.Is(err, sandbox.ErrThresholdsChanged):
		return exitThresholdsChange
	default:
		return exitFailure
	}
}

// setupSDKConfig makes addresses on the command line and in output use the push prefixes.
func setupSDKConfig() {
	config := sdk.GetConfig()

	config.SetBech32PrefixForAccount("push", "pushpub")
	config.SetBech32PrefixForValidator("pushvaloper", "pushvaloperpub")
	config.SetBech32PrefixForConsensusNode("pushvalcons", "pushvalconspub")
	config.SetCoinType(60)

	config.Seal()
}
