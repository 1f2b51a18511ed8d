// Package message implements the canonical cross-chain message encoding, its
// content-addressed identifier and the checkpoint digests validators sign.
package message

import (
	"encoding/binary"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// Version is the protocol version stamped into every dispatched message.
	Version uint8 = 3

	versionOffset     = 0
	nonceOffset       = 1
	originOffset      = 5
	senderOffset      = 9
	destinationOffset = 41
	recipientOffset   = 45
	bodyOffset        = 77

	// HeaderLength is the length of the fixed part of an encoded message.
	HeaderLength = bodyOffset
)

// Message is a cross-chain message. It is never mutated after construction.
type Message struct {
	Version     uint8
	Nonce       uint32
	Origin      uint32
	Sender      util.HexAddress
	Destination uint32
	Recipient   util.HexAddress
	Body        []byte
}

// NewMessage builds a message stamped with the current protocol version.
func NewMessage(nonce, origin uint32, sender util.HexAddress, destination uint32, recipient util.HexAddress, body []byte) Message {
	return Message{
		Version:     Version,
		Nonce:       nonce,
		Origin:      origin,
		Sender:      sender,
		Destination: destination,
		Recipient:   recipient,
		Body:        body,
	}
}

// ParseMessage decodes the fixed layout encoding. Everything after the 77 byte
// header is the body.
func ParseMessage(raw []byte) (Message, error) {
	if len(raw) < HeaderLength {
		return Message{}, errorsmod.Wrapf(ErrMalformedMessage, "expected at least %d bytes, got %d", HeaderLength, len(raw))
	}

	return Message{
		Version:     raw[versionOffset],
		Nonce:       binary.BigEndian.Uint32(raw[nonceOffset:originOffset]),
		Origin:      binary.BigEndian.Uint32(raw[originOffset:senderOffset]),
		Sender:      util.HexAddress(raw[senderOffset:destinationOffset]),
		Destination: binary.BigEndian.Uint32(raw[destinationOffset:recipientOffset]),
		Recipient:   util.HexAddress(raw[recipientOffset:bodyOffset]),
		Body:        append([]byte(nil), raw[bodyOffset:]...),
	}, nil
}

// Bytes returns the canonical encoding:
// [0] version, [1:5] nonce, [5:9] origin, [9:41] sender, [41:45] destination,
// [45:77] recipient, [77:] body. Integers are big endian.
func (m Message) Bytes() []byte {
	bz := make([]byte, HeaderLength, HeaderLength+len(m.Body))
	bz[versionOffset] = m.Version
	binary.BigEndian.PutUint32(bz[nonceOffset:originOffset], m.Nonce)
	binary.BigEndian.PutUint32(bz[originOffset:senderOffset], m.Origin)
	copy(bz[senderOffset:destinationOffset], m.Sender[:])
	binary.BigEndian.PutUint32(bz[destinationOffset:recipientOffset], m.Destination)
	copy(bz[recipientOffset:bodyOffset], m.Recipient[:])
	return append(bz, m.Body...)
}

// Id is keccak256 of the canonical encoding.
func (m Message) Id() util.HexAddress {
	return util.HexAddress(crypto.Keccak256(m.Bytes()))
}

// Hyperlane converts m into the message type hyperlane-cosmos modules are
// called with.
func (m Message) Hyperlane() util.HyperlaneMessage {
	return util.HyperlaneMessage{
		Version:     m.Version,
		Nonce:       m.Nonce,
		Origin:      m.Origin,
		Sender:      m.Sender,
		Destination: m.Destination,
		Recipient:   m.Recipient,
		Body:        m.Body,
	}
}

func FromHyperlane(msg util.HyperlaneMessage) Message {
	return Message{
		Version:     msg.Version,
		Nonce:       msg.Nonce,
		Origin:      msg.Origin,
		Sender:      msg.Sender,
		Destination: msg.Destination,
		Recipient:   msg.Recipient,
		Body:        msg.Body,
	}
}

func (m Message) String() string {
	return fmt.Sprintf(
		"Message{version: %d, nonce: %d, origin: %d, sender: %s, destination: %d, recipient: %s, body: %x}",
		m.Version, m.Nonce, m.Origin, m.Sender, m.Destination, m.Recipient, m.Body,
	)
}
