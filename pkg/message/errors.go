package message

import errorsmod "cosmossdk.io/errors"

// Codespace is the error codespace of the message codec.
const Codespace = "message"

var (
	ErrMalformedMessage  = errorsmod.Register(Codespace, 2, "malformed message")
	ErrInvalidHexAddress = errorsmod.Register(Codespace, 3, "invalid hex address")
)
