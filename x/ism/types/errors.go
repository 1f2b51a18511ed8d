package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Module error codes scoped by ModuleName.
// NOTE: Error code 1 is reserved by cosmos-sdk as internal error / unknown failure

var (
	ErrIsmNotFound           = errorsmod.Register(ModuleName, 2, "ism not found")
	ErrInvalidMetadataLength = errorsmod.Register(ModuleName, 3, "invalid metadata length")
	ErrThresholdNotReached   = errorsmod.Register(ModuleName, 4, "threshold not reached")
	ErrInvalidValidatorSet   = errorsmod.Register(ModuleName, 5, "invalid validator set")
	ErrMessageIdMismatch     = errorsmod.Register(ModuleName, 6, "metadata message id does not match message")
	ErrNoRoute               = errorsmod.Register(ModuleName, 7, "no ism route for origin")
	ErrInvalidOwner          = errorsmod.Register(ModuleName, 8, "invalid owner")
	ErrUnexpectedIsmType     = errorsmod.Register(ModuleName, 9, "unexpected ism type")
	ErrInvalidAggregation    = errorsmod.Register(ModuleName, 10, "invalid aggregation ism")
	ErrRecursionLimit        = errorsmod.Register(ModuleName, 11, "ism nesting too deep")
)
