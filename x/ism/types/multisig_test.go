package types_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/ethsig"
	"github.com/celestiaorg/hyperlane-mailbox/x/ism/types"
)

func TestVerifyMultisig(t *testing.T) {
	keys, validators := testValidators(t, 5)
	digest := crypto.Keccak256Hash([]byte("checkpoint"))

	sign := func(indices ...int) [][]byte {
		sigs := make([][]byte, len(indices))
		for i, idx := range indices {
			sig, err := ethsig.Sign(digest[:], keys[idx])
			require.NoError(t, err)
			sigs[i] = sig
		}
		return sigs
	}

	testCases := []struct {
		name       string
		signatures [][]byte
		threshold  uint32
		expErr     error
	}{
		{name: "ordered subset", signatures: sign(0, 2, 4), threshold: 3},
		{name: "adjacent signers", signatures: sign(1, 2, 3), threshold: 3},
		{name: "extra signatures are ignored", signatures: sign(0, 1, 2, 3), threshold: 3},
		{name: "out of order", signatures: sign(2, 0, 4), threshold: 3, expErr: types.ErrThresholdNotReached},
		{name: "duplicate signer", signatures: sign(0, 0, 4), threshold: 3, expErr: types.ErrThresholdNotReached},
		{name: "too few signatures", signatures: sign(0, 2), threshold: 3, expErr: types.ErrThresholdNotReached},
		{name: "zero threshold", signatures: sign(0), threshold: 0, expErr: types.ErrThresholdNotReached},
		{name: "malformed signature", signatures: append(sign(0, 2), make([]byte, 65)), threshold: 3, expErr: ethsig.ErrInvalidRecoveryId},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := types.VerifyMultisig(digest, tc.signatures, validators, tc.threshold)
			if tc.expErr != nil {
				require.ErrorIs(t, err, tc.expErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestVerifyMultisigUnknownSigner(t *testing.T) {
	keys, validators := testValidators(t, 4)
	digest := crypto.Keccak256Hash([]byte("checkpoint"))

	// key 3 signs, but only the first three keys are validators
	sig, err := ethsig.Sign(digest[:], keys[3])
	require.NoError(t, err)

	err = types.VerifyMultisig(digest, [][]byte{sig}, validators[:3], 1)
	require.ErrorIs(t, err, types.ErrThresholdNotReached)
}

func TestNewValidatorSet(t *testing.T) {
	_, validators := testValidators(t, 3)

	testCases := []struct {
		name       string
		validators []common.Address
		threshold  uint32
		expErr     bool
	}{
		{name: "valid", validators: validators, threshold: 2},
		{name: "threshold equals size", validators: validators, threshold: 3},
		{name: "zero threshold", validators: validators, threshold: 0, expErr: true},
		{name: "threshold above size", validators: validators, threshold: 4, expErr: true},
		{name: "empty", validators: nil, threshold: 1, expErr: true},
		{name: "duplicate", validators: []common.Address{validators[0], validators[1], validators[0]}, threshold: 2, expErr: true},
		{name: "zero address", validators: []common.Address{validators[0], {}}, threshold: 1, expErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := types.NewValidatorSet(tc.validators, tc.threshold)
			if tc.expErr {
				require.ErrorIs(t, err, types.ErrInvalidValidatorSet)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.validators, set.Validators)
			require.Equal(t, tc.threshold, set.Threshold)
		})
	}
}
