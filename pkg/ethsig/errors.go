package ethsig

import errorsmod "cosmossdk.io/errors"

const Codespace = "ethsig"

var (
	ErrInvalidSignature  = errorsmod.Register(Codespace, 2, "invalid signature")
	ErrInvalidRecoveryId = errorsmod.Register(Codespace, 3, "invalid recovery id")
)
