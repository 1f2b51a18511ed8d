package keeper

import (
	"context"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/codec"
	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	"github.com/celestiaorg/hyperlane-mailbox/x/inbox/types"
	mailboxtypes "github.com/celestiaorg/hyperlane-mailbox/x/mailbox/types"
	pdtypes "github.com/celestiaorg/hyperlane-mailbox/x/postdispatch/types"
)

var _ mailboxtypes.MessageHandler = (*Keeper)(nil)

type Keeper struct {
	inboxes  collections.Map[uint64, types.Inbox]
	received collections.Map[collections.Pair[uint64, uint64], types.ReceivedMessage]
	schema   collections.Schema

	router        *mailboxtypes.AppRouter
	mailboxKeeper types.MailboxKeeper
}

// NewKeeper creates the keeper and registers it on the app router.
func NewKeeper(storeService corestore.KVStoreService, router *mailboxtypes.AppRouter, mailboxKeeper types.MailboxKeeper) *Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	inboxes := collections.NewMap(sb, types.InboxesKeyPrefix, "inboxes", collections.Uint64Key, codec.JSONValue[types.Inbox]("hyperlane/inbox"))
	received := collections.NewMap(sb, types.ReceivedKeyPrefix, "received", collections.PairKeyCodec(collections.Uint64Key, collections.Uint64Key), codec.JSONValue[types.ReceivedMessage]("hyperlane/received_message"))

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}

	keeper := &Keeper{
		inboxes:       inboxes,
		received:      received,
		schema:        schema,
		router:        router,
		mailboxKeeper: mailboxKeeper,
	}

	router.RegisterModule(types.RouterModuleId, keeper)

	return keeper
}

// Logger returns the module logger extracted using the sdk context.
func (k *Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// CreateInbox creates an inbox attached to mailboxId. A nil ismId leaves
// verification to the mailbox default ism.
func (k *Keeper) CreateInbox(ctx context.Context, owner string, mailboxId util.HexAddress, ismId *util.HexAddress) (util.HexAddress, error) {
	if _, err := k.mailboxKeeper.LocalDomain(ctx, mailboxId); err != nil {
		return util.HexAddress{}, err
	}

	id, err := k.router.GetNextSequence(ctx, types.RouterModuleId)
	if err != nil {
		return util.HexAddress{}, err
	}

	inbox := types.Inbox{Id: id, Owner: owner, MailboxId: mailboxId, IsmId: ismId}
	if err := k.inboxes.Set(ctx, id.GetInternalId(), inbox); err != nil {
		return util.HexAddress{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewCreateInboxEvent(inbox))
	return id, nil
}

func (k *Keeper) GetInbox(ctx context.Context, inboxId util.HexAddress) (types.Inbox, error) {
	exists, err := k.Exists(ctx, inboxId)
	if err != nil {
		return types.Inbox{}, err
	}
	if !exists {
		return types.Inbox{}, errorsmod.Wrapf(types.ErrInboxNotFound, "%s", inboxId)
	}
	return k.inboxes.Get(ctx, inboxId.GetInternalId())
}

// SetInboxIsm replaces the ism of an inbox. A nil ismId falls back to the
// mailbox default.
func (k *Keeper) SetInboxIsm(ctx context.Context, owner string, inboxId util.HexAddress, ismId *util.HexAddress) error {
	inbox, err := k.ownedInbox(ctx, owner, inboxId)
	if err != nil {
		return err
	}
	inbox.IsmId = ismId
	return k.inboxes.Set(ctx, inboxId.GetInternalId(), inbox)
}

// Send dispatches body from the inbox through its mailbox.
func (k *Keeper) Send(
	ctx context.Context,
	owner string,
	inboxId util.HexAddress,
	destination uint32,
	recipient util.HexAddress,
	body []byte,
	hookId *util.HexAddress,
	hookMetadata *pdtypes.StandardHookMetadata,
	payment sdk.Coins,
) (util.HexAddress, sdk.Coins, error) {
	inbox, err := k.ownedInbox(ctx, owner, inboxId)
	if err != nil {
		return util.HexAddress{}, nil, err
	}

	ctx = mailboxtypes.WithAuthenticatedSender(ctx, inboxId)
	return k.mailboxKeeper.DispatchMessage(ctx, inbox.MailboxId, inboxId, destination, recipient, body, hookId, hookMetadata, payment)
}

// ReceivedMessages returns what the inbox received, oldest first.
func (k *Keeper) ReceivedMessages(ctx context.Context, inboxId util.HexAddress) ([]types.ReceivedMessage, error) {
	if _, err := k.GetInbox(ctx, inboxId); err != nil {
		return nil, err
	}

	iter, err := k.received.Iterate(ctx, collections.NewPrefixedPairRange[uint64, uint64](inboxId.GetInternalId()))
	if err != nil {
		return nil, err
	}
	return iter.Values()
}

// Exists implements mailboxtypes.MessageHandler.
func (k *Keeper) Exists(ctx context.Context, recipient util.HexAddress) (bool, error) {
	if recipient.GetType() != uint32(types.RouterModuleId) {
		return false, nil
	}
	inbox, err := k.inboxes.Get(ctx, recipient.GetInternalId())
	if errorsmod.IsOf(err, collections.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return inbox.Id == recipient, nil
}

// ReceiverIsmId implements mailboxtypes.MessageHandler.
func (k *Keeper) ReceiverIsmId(ctx context.Context, recipient util.HexAddress) (*util.HexAddress, error) {
	inbox, err := k.GetInbox(ctx, recipient)
	if err != nil {
		return nil, err
	}
	return inbox.IsmId, nil
}

// Handle implements mailboxtypes.MessageHandler. Only the mailbox the inbox
// is attached to may deliver.
func (k *Keeper) Handle(ctx context.Context, mailboxId util.HexAddress, msg message.Message, hints []util.HexAddress) error {
	inbox, err := k.GetInbox(ctx, msg.Recipient)
	if err != nil {
		return err
	}
	if inbox.MailboxId != mailboxId {
		return errorsmod.Wrapf(types.ErrUnauthorizedMailbox, "inbox %s is attached to %s, not %s", inbox.Id, inbox.MailboxId, mailboxId)
	}

	received := types.ReceivedMessage{
		Id:     msg.Id(),
		Origin: msg.Origin,
		Sender: msg.Sender,
		Body:   msg.Body,
		Hints:  hints,
	}
	if err := k.received.Set(ctx, collections.Join(inbox.Id.GetInternalId(), inbox.Received), received); err != nil {
		return err
	}
	inbox.Received++
	if err := k.inboxes.Set(ctx, inbox.Id.GetInternalId(), inbox); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewReceiveEvent(inbox.Id, msg))
	return nil
}

func (k *Keeper) ownedInbox(ctx context.Context, owner string, inboxId util.HexAddress) (types.Inbox, error) {
	inbox, err := k.GetInbox(ctx, inboxId)
	if err != nil {
		return types.Inbox{}, err
	}
	if inbox.Owner != owner {
		return types.Inbox{}, errorsmod.Wrapf(types.ErrInvalidOwner, "%s does not own inbox %s", owner, inboxId)
	}
	return inbox, nil
}
