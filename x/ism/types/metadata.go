package types

import (
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"
	"github.com/bcp-innovations/hyperlane-cosmos/util"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/ethsig"
	"github.com/celestiaorg/hyperlane-mailbox/pkg/merkle"
	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
)

const (
	MessageIdMultisigHeaderLength  = 68
	MerkleRootMultisigHeaderLength = 1096
)

// MessageIdMultisigMetadata signs the message id directly against a
// checkpoint of the origin merkle tree hook.
type MessageIdMultisigMetadata struct {
	MerkleTreeHook util.HexAddress
	SignedRoot     [32]byte
	SignedIndex    uint32
	Signatures     [][]byte
}

// ParseMessageIdMultisigMetadata decodes the message-id metadata layout:
// [0:32]  origin merkle tree hook
// [32:64] signed checkpoint root
// [64:68] signed checkpoint index
// [68:]   signatures, 65 bytes each
func ParseMessageIdMultisigMetadata(metadata []byte) (MessageIdMultisigMetadata, error) {
	signatures, err := splitSignatures(metadata, MessageIdMultisigHeaderLength)
	if err != nil {
		return MessageIdMultisigMetadata{}, err
	}

	m := MessageIdMultisigMetadata{
		MerkleTreeHook: util.HexAddress(metadata[0:32]),
		SignedIndex:    binary.BigEndian.Uint32(metadata[64:68]),
		Signatures:     signatures,
	}
	copy(m.SignedRoot[:], metadata[32:64])
	return m, nil
}

func (m MessageIdMultisigMetadata) Bytes() []byte {
	bz := make([]byte, 0, MessageIdMultisigHeaderLength+len(m.Signatures)*ethsig.SignatureLength)
	bz = append(bz, m.MerkleTreeHook[:]...)
	bz = append(bz, m.SignedRoot[:]...)
	bz = binary.BigEndian.AppendUint32(bz, m.SignedIndex)
	for _, sig := range m.Signatures {
		bz = append(bz, sig...)
	}
	return bz
}

// Digest is the checkpoint digest validators signed for msg.
func (m MessageIdMultisigMetadata) Digest(msg message.Message) [32]byte {
	return msg.Digest(m.MerkleTreeHook, m.SignedRoot, m.SignedIndex)
}

// MerkleRootMultisigMetadata proves the message into a signed checkpoint
// root, so one checkpoint can cover many messages.
type MerkleRootMultisigMetadata struct {
	MerkleTreeHook util.HexAddress
	MessageIndex   uint32
	MessageId      util.HexAddress
	Proof          merkle.Proof
	SignedIndex    uint32
	Signatures     [][]byte
}

// ParseMerkleRootMultisigMetadata decodes the merkle-root metadata layout:
// [0:32]      origin merkle tree hook
// [32:36]     message index
// [36:68]     message id
// [68:1092]   merkle proof
// [1092:1096] signed checkpoint index
// [1096:]     signatures, 65 bytes each
func ParseMerkleRootMultisigMetadata(metadata []byte) (MerkleRootMultisigMetadata, error) {
	signatures, err := splitSignatures(metadata, MerkleRootMultisigHeaderLength)
	if err != nil {
		return MerkleRootMultisigMetadata{}, err
	}

	m := MerkleRootMultisigMetadata{
		MerkleTreeHook: util.HexAddress(metadata[0:32]),
		MessageIndex:   binary.BigEndian.Uint32(metadata[32:36]),
		MessageId:      util.HexAddress(metadata[36:68]),
		SignedIndex:    binary.BigEndian.Uint32(metadata[1092:1096]),
		Signatures:     signatures,
	}
	for i := range m.Proof {
		copy(m.Proof[i][:], metadata[68+32*i:68+32*(i+1)])
	}
	return m, nil
}

func (m MerkleRootMultisigMetadata) Bytes() []byte {
	bz := make([]byte, 0, MerkleRootMultisigHeaderLength+len(m.Signatures)*ethsig.SignatureLength)
	bz = append(bz, m.MerkleTreeHook[:]...)
	bz = binary.BigEndian.AppendUint32(bz, m.MessageIndex)
	bz = append(bz, m.MessageId[:]...)
	for i := range m.Proof {
		bz = append(bz, m.Proof[i][:]...)
	}
	bz = binary.BigEndian.AppendUint32(bz, m.SignedIndex)
	for _, sig := range m.Signatures {
		bz = append(bz, sig...)
	}
	return bz
}

// Root recomputes the checkpoint root from the message id and its proof.
func (m MerkleRootMultisigMetadata) Root() [32]byte {
	return merkle.RootFromBranch(m.MessageId, m.Proof, m.MessageIndex)
}

// Digest is the checkpoint digest validators signed for msg. The root is
// rebuilt from msg's own id, not the one carried in the metadata.
func (m MerkleRootMultisigMetadata) Digest(msg message.Message) [32]byte {
	root := merkle.RootFromBranch(msg.Id(), m.Proof, m.MessageIndex)
	return msg.Digest(m.MerkleTreeHook, root, m.SignedIndex)
}

func splitSignatures(metadata []byte, headerLength int) ([][]byte, error) {
	if len(metadata) < headerLength+ethsig.SignatureLength {
		return nil, errorsmod.Wrapf(ErrInvalidMetadataLength, "need at least %d bytes, got %d", headerLength+ethsig.SignatureLength, len(metadata))
	}

	raw := metadata[headerLength:]
	if len(raw)%ethsig.SignatureLength != 0 {
		return nil, errorsmod.Wrapf(ErrInvalidMetadataLength, "signature section of %d bytes is not a multiple of %d", len(raw), ethsig.SignatureLength)
	}

	signatures := make([][]byte, 0, len(raw)/ethsig.SignatureLength)
	for offset := 0; offset < len(raw); offset += ethsig.SignatureLength {
		signatures = append(signatures, raw[offset:offset+ethsig.SignatureLength])
	}
	return signatures, nil
}

// aggregationRangeLength is the per module [start, end) offset pair.
const aggregationRangeLength = 8

// ParseAggregationMetadata splits aggregation metadata into one entry per
// sub module. The header holds, for module i, the big endian u32 start and
// end offsets into metadata at [8i:8i+4] and [8i+4:8i+8]. A zero start means
// no metadata was supplied for that module and yields a nil entry.
func ParseAggregationMetadata(metadata []byte, count int) ([][]byte, error) {
	if len(metadata) < count*aggregationRangeLength {
		return nil, errorsmod.Wrapf(ErrInvalidMetadataLength, "aggregation header for %d modules needs %d bytes, got %d", count, count*aggregationRangeLength, len(metadata))
	}

	parts := make([][]byte, count)
	for i := 0; i < count; i++ {
		offset := i * aggregationRangeLength
		start := binary.BigEndian.Uint32(metadata[offset : offset+4])
		end := binary.BigEndian.Uint32(metadata[offset+4 : offset+8])
		if start == 0 {
			continue
		}
		if start > end || uint64(end) > uint64(len(metadata)) {
			return nil, errorsmod.Wrapf(ErrInvalidMetadataLength, "module %d range [%d, %d) outside %d bytes", i, start, end, len(metadata))
		}
		parts[i] = metadata[start:end]
	}
	return parts, nil
}

// EncodeAggregationMetadata is the inverse of ParseAggregationMetadata. Nil
// entries are encoded as absent.
func EncodeAggregationMetadata(parts [][]byte) []byte {
	header := make([]byte, len(parts)*aggregationRangeLength)
	var body []byte
	for i, part := range parts {
		if part == nil {
			continue
		}
		start := uint32(len(header) + len(body))
		body = append(body, part...)
		end := uint32(len(header) + len(body))

		binary.BigEndian.PutUint32(header[i*aggregationRangeLength:], start)
		binary.BigEndian.PutUint32(header[i*aggregationRangeLength+4:], end)
	}
	return append(header, body...)
}
