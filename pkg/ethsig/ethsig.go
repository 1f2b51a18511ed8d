// Package ethsig recovers and produces the 65 byte [r || s || v] secp256k1
// signatures validators put on checkpoint digests.
package ethsig

import (
	"crypto/ecdsa"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	SignatureLength = crypto.SignatureLength

	// recoveryIdOffset is added to the raw recovery id on the wire.
	recoveryIdOffset = 27
)

// RecoverAddress returns the address whose key produced signature over
// digest. The digest is used as is, any prefixing must already be applied.
func RecoverAddress(digest []byte, signature []byte) (common.Address, error) {
	if len(digest) != common.HashLength {
		return common.Address{}, errorsmod.Wrapf(ErrInvalidSignature, "digest must be %d bytes, got %d", common.HashLength, len(digest))
	}
	if len(signature) != SignatureLength {
		return common.Address{}, errorsmod.Wrapf(ErrInvalidSignature, "signature must be %d bytes, got %d", SignatureLength, len(signature))
	}

	v := signature[crypto.RecoveryIDOffset]
	if v != recoveryIdOffset && v != recoveryIdOffset+1 {
		return common.Address{}, errorsmod.Wrapf(ErrInvalidRecoveryId, "got %d", v)
	}
	v -= recoveryIdOffset

	r := new(big.Int).SetBytes(signature[:32])
	s := new(big.Int).SetBytes(signature[32:64])
	if !crypto.ValidateSignatureValues(v, r, s, false) {
		return common.Address{}, errorsmod.Wrap(ErrInvalidSignature, "r or s out of range")
	}

	normalized := make([]byte, SignatureLength)
	copy(normalized, signature)
	normalized[crypto.RecoveryIDOffset] = v

	pub, err := crypto.Ecrecover(digest, normalized)
	if err != nil {
		return common.Address{}, errorsmod.Wrap(ErrInvalidSignature, err.Error())
	}

	// pub is 0x04 || X || Y
	return common.BytesToAddress(crypto.Keccak256(pub[1:])[12:]), nil
}

// Sign signs digest with key and returns the signature with v in {27, 28}.
func Sign(digest []byte, key *ecdsa.PrivateKey) ([]byte, error) {
	if key == nil {
		return nil, errorsmod.Wrap(ErrInvalidSignature, "private key is nil")
	}
	sig, err := crypto.Sign(digest, key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += recoveryIdOffset
	return sig, nil
}
