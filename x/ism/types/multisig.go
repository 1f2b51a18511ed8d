package types

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/ethsig"
)

// VerifyMultisig checks that the first threshold signatures recover to
// members of validators, in the order the validators are listed. A single
// forward cursor walks validators, so a validator can never be matched twice
// and out of order signatures fail.
func VerifyMultisig(digest [32]byte, signatures [][]byte, validators []common.Address, threshold uint32) error {
	if threshold == 0 {
		return errorsmod.Wrap(ErrThresholdNotReached, "threshold is zero")
	}
	if uint64(len(signatures)) < uint64(threshold) {
		return errorsmod.Wrapf(ErrThresholdNotReached, "got %d signatures, need %d", len(signatures), threshold)
	}

	j := 0
	for i := 0; i < int(threshold); i++ {
		signer, err := ethsig.RecoverAddress(digest[:], signatures[i])
		if err != nil {
			return errorsmod.Wrapf(err, "signature %d", i)
		}

		for j < len(validators) && validators[j] != signer {
			j++
		}
		if j == len(validators) {
			return errorsmod.Wrapf(ErrThresholdNotReached, "signature %d from %s does not match remaining validators", i, signer.Hex())
		}
		j++
	}

	return nil
}
