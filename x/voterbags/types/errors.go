package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Error codes for the voterbags module
const (
	BaseErrorCode uint32 = 1
)

var (
	ErrInvalidThresholds = errorsmod.Register(ModuleName, BaseErrorCode+1, "invalid bag thresholds")
	ErrDuplicateVoter    = errorsmod.Register(ModuleName, BaseErrorCode+2, "voter already in list")
	ErrCorruptedList     = errorsmod.Register(ModuleName, BaseErrorCode+3, "voter list is corrupted")
	ErrInvalidVoterType  = errorsmod.Register(ModuleName, BaseErrorCode+4, "invalid voter type")
	ErrInvalidGenesis    = errorsmod.Register(ModuleName, BaseErrorCode+5, "invalid genesis state")
)
