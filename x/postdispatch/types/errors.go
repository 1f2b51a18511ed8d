package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Module error codes scoped by ModuleName.
// NOTE: Error code 1 is reserved by cosmos-sdk as internal error / unknown failure

var (
	ErrHookNotFound        = errorsmod.Register(ModuleName, 2, "hook not found")
	ErrUnexpectedHookType  = errorsmod.Register(ModuleName, 3, "unexpected hook type")
	ErrInvalidMailbox      = errorsmod.Register(ModuleName, 4, "hook is not bound to mailbox")
	ErrNotLatestDispatched = errorsmod.Register(ModuleName, 5, "message is not the latest dispatched message")
	ErrEmptyTree           = errorsmod.Register(ModuleName, 6, "merkle tree is empty")
	ErrInsufficientPayment = errorsmod.Register(ModuleName, 7, "insufficient payment")
	ErrInvalidFee          = errorsmod.Register(ModuleName, 8, "invalid protocol fee")
	ErrInvalidOwner        = errorsmod.Register(ModuleName, 9, "invalid owner")
)
