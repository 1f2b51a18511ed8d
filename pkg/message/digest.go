package message

import (
	"encoding/binary"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	"github.com/ethereum/go-ethereum/crypto"
)

// domainSeparator is appended to (origin, merkle tree hook) to build the
// domain hash binding signatures to a chain and accumulator instance.
const domainSeparator = "HYPERLANE"

// Checkpoint is the (root, index) commitment of a merkle tree hook that
// validators sign, scoped by origin domain and hook address.
type Checkpoint struct {
	Origin         uint32
	MerkleTreeHook util.HexAddress
	Root           [32]byte
	Index          uint32
}

// DomainHash returns keccak256(origin || merkleTreeHook || "HYPERLANE").
func DomainHash(origin uint32, merkleTreeHook util.HexAddress) [32]byte {
	bz := make([]byte, 0, 4+util.HEX_ADDRESS_LENGTH+len(domainSeparator))
	bz = binary.BigEndian.AppendUint32(bz, origin)
	bz = append(bz, merkleTreeHook[:]...)
	bz = append(bz, domainSeparator...)
	return crypto.Keccak256Hash(bz)
}

// EthSignedMessageHash applies the "\x19Ethereum Signed Message:\n32" prefix
// that validator signers add before signing a 32 byte hash.
func EthSignedMessageHash(hash [32]byte) [32]byte {
	return crypto.Keccak256Hash([]byte("\x19Ethereum Signed Message:\n32"), hash[:])
}

// Digest returns the hash validators sign to attest that messageId is
// included in the checkpoint.
func (c Checkpoint) Digest(messageId util.HexAddress) [32]byte {
	domainHash := DomainHash(c.Origin, c.MerkleTreeHook)

	bz := make([]byte, 0, 32+32+4+util.HEX_ADDRESS_LENGTH)
	bz = append(bz, domainHash[:]...)
	bz = append(bz, c.Root[:]...)
	bz = binary.BigEndian.AppendUint32(bz, c.Index)
	bz = append(bz, messageId[:]...)

	return EthSignedMessageHash(crypto.Keccak256Hash(bz))
}

// CheckpointDigest is Checkpoint.Digest for callers that only hold the message id.
func CheckpointDigest(origin uint32, messageId, merkleTreeHook util.HexAddress, root [32]byte, index uint32) [32]byte {
	return Checkpoint{Origin: origin, MerkleTreeHook: merkleTreeHook, Root: root, Index: index}.Digest(messageId)
}

// Digest is the checkpoint digest for this message's origin and id.
func (m Message) Digest(merkleTreeHook util.HexAddress, root [32]byte, index uint32) [32]byte {
	return CheckpointDigest(m.Origin, m.Id(), merkleTreeHook, root, index)
}
