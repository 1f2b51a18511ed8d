package types

import errorsmod "cosmossdk.io/errors"

var (
	ErrMailboxNotFound    = errorsmod.Register(ModuleName, 2, "mailbox not found")
	ErrSenderMismatch     = errorsmod.Register(ModuleName, 3, "claimed sender is not the caller")
	ErrDomainMismatch     = errorsmod.Register(ModuleName, 4, "message destination does not match local domain")
	ErrUnsupportedVersion = errorsmod.Register(ModuleName, 5, "unsupported message version")
	ErrAlreadyDelivered   = errorsmod.Register(ModuleName, 6, "message already delivered")
	ErrNoIsmConfigured    = errorsmod.Register(ModuleName, 7, "neither recipient nor mailbox specify an ism")
	ErrVerificationFailed = errorsmod.Register(ModuleName, 8, "ism verification failed")
	ErrNoHookConfigured   = errorsmod.Register(ModuleName, 9, "no post dispatch hook configured")
	ErrQuoteOverflow      = errorsmod.Register(ModuleName, 10, "quote exceeds 256 bits")
	ErrInvalidOwner       = errorsmod.Register(ModuleName, 11, "invalid mailbox owner")
	ErrRecipientNotFound  = errorsmod.Register(ModuleName, 12, "recipient not found")
	ErrNonceOverflow      = errorsmod.Register(ModuleName, 13, "mailbox nonce exhausted")
)
