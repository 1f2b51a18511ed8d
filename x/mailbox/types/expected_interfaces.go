package types

import (
	"context"

	"github.com/bcp-innovations/hyperlane-cosmos/util"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
)

// MessageHandler is implemented by applications that receive messages. They
// register on the app router and their recipient addresses carry the module
// id they registered with. It is util.HyperlaneApp with relayer hints added
// to Handle.
type MessageHandler interface {
	Exists(ctx context.Context, recipient util.HexAddress) (bool, error)
	// ReceiverIsmId returns the ism the recipient wants its messages verified
	// with, or nil to use the mailbox default.
	ReceiverIsmId(ctx context.Context, recipient util.HexAddress) (*util.HexAddress, error)
	// Handle delivers a verified message. hints are passed through from the
	// relayer untouched.
	Handle(ctx context.Context, mailboxId util.HexAddress, msg message.Message, hints []util.HexAddress) error
}

// AppRouter resolves a recipient address to its application.
type AppRouter = util.Router[MessageHandler]

// Metrics receives counters for mailbox activity. A nil Metrics records
// nothing.
type Metrics interface {
	MessageDispatched(mailboxId util.HexAddress, destination uint32)
	MessageProcessed(mailboxId util.HexAddress, origin uint32)
	MessageRejected(mailboxId util.HexAddress, reason string)
}
