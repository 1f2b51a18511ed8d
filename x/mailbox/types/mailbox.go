package types

import (
	"context"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	coretypes "github.com/bcp-innovations/hyperlane-cosmos/x/core/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
)

// Mailbox is the state of one mailbox instance. LocalDomain never changes
// after creation and MessageSent is the nonce of the next dispatched message.
type Mailbox struct {
	Id                 util.HexAddress  `json:"id"`
	Owner              string           `json:"owner"`
	LocalDomain        uint32           `json:"local_domain"`
	MessageSent        uint32           `json:"message_sent"`
	MessageReceived    uint32           `json:"message_received"`
	DefaultIsm         *util.HexAddress `json:"default_ism,omitempty"`
	DefaultHook        *util.HexAddress `json:"default_hook,omitempty"`
	RequiredHook       *util.HexAddress `json:"required_hook,omitempty"`
	LatestDispatchedId util.HexAddress  `json:"latest_dispatched_id"`
}

// Record returns the stored form of the mailbox. LatestDispatchedId is kept
// outside the record.
func (m Mailbox) Record() coretypes.Mailbox {
	record := coretypes.Mailbox{
		Id:              m.Id,
		Owner:           m.Owner,
		MessageSent:     m.MessageSent,
		MessageReceived: m.MessageReceived,
		DefaultHook:     m.DefaultHook,
		RequiredHook:    m.RequiredHook,
		LocalDomain:     m.LocalDomain,
	}
	if m.DefaultIsm != nil {
		record.DefaultIsm = *m.DefaultIsm
	}
	return record
}

// MailboxFromRecord is the inverse of Record. A zero default ism in the
// record means none is set.
func MailboxFromRecord(record coretypes.Mailbox, latestDispatchedId util.HexAddress) Mailbox {
	m := Mailbox{
		Id:                 record.Id,
		Owner:              record.Owner,
		LocalDomain:        record.LocalDomain,
		MessageSent:        record.MessageSent,
		MessageReceived:    record.MessageReceived,
		DefaultHook:        record.DefaultHook,
		RequiredHook:       record.RequiredHook,
		LatestDispatchedId: latestDispatchedId,
	}
	if !record.DefaultIsm.IsZeroAddress() {
		ism := record.DefaultIsm
		m.DefaultIsm = &ism
	}
	return m
}

// MailboxConfig holds the owner settable references of a mailbox. A nil
// field leaves the reference unset.
type MailboxConfig struct {
	DefaultIsm   *util.HexAddress
	DefaultHook  *util.HexAddress
	RequiredHook *util.HexAddress
}

type senderKey struct{}

// WithAuthenticatedSender records the address the host authenticated as the
// caller of a dispatch. Dispatch rejects a claimed sender that differs.
func WithAuthenticatedSender(ctx context.Context, sender util.HexAddress) context.Context {
	return sdk.UnwrapSDKContext(ctx).WithValue(senderKey{}, sender)
}

// AuthenticatedSender returns the sender recorded by WithAuthenticatedSender.
func AuthenticatedSender(ctx context.Context) (util.HexAddress, bool) {
	sender, ok := sdk.UnwrapSDKContext(ctx).Value(senderKey{}).(util.HexAddress)
	return sender, ok
}
