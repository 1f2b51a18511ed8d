package types

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"
)

// ValidatorSet is an ordered list of checkpoint signers and the number of
// them required to attest a message. Order matters: signatures must be
// supplied in the same relative order.
type ValidatorSet struct {
	Validators []common.Address `json:"validators"`
	Threshold  uint32           `json:"threshold"`
}

// NewValidatorSet builds a validated set. All constructors of multisig ISMs
// go through it.
func NewValidatorSet(validators []common.Address, threshold uint32) (ValidatorSet, error) {
	set := ValidatorSet{
		Validators: append([]common.Address(nil), validators...),
		Threshold:  threshold,
	}
	return set, set.Validate()
}

// Validate requires 0 < threshold <= len(validators), no zero address and no
// duplicate validator.
func (v ValidatorSet) Validate() error {
	if v.Threshold == 0 {
		return errorsmod.Wrap(ErrInvalidValidatorSet, "threshold must be greater than zero")
	}
	if int(v.Threshold) > len(v.Validators) {
		return errorsmod.Wrapf(ErrInvalidValidatorSet, "threshold %d exceeds %d validators", v.Threshold, len(v.Validators))
	}

	seen := make(map[common.Address]struct{}, len(v.Validators))
	for i, validator := range v.Validators {
		if validator == (common.Address{}) {
			return errorsmod.Wrapf(ErrInvalidValidatorSet, "validator %d is the zero address", i)
		}
		if _, ok := seen[validator]; ok {
			return errorsmod.Wrapf(ErrInvalidValidatorSet, "duplicate validator %s", validator.Hex())
		}
		seen[validator] = struct{}{}
	}
	return nil
}
