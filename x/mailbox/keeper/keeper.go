package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	coretypes "github.com/bcp-innovations/hyperlane-cosmos/x/core/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	ismtypes "github.com/celestiaorg/hyperlane-mailbox/x/ism/types"
	"github.com/celestiaorg/hyperlane-mailbox/x/mailbox/types"
	pdtypes "github.com/celestiaorg/hyperlane-mailbox/x/postdispatch/types"
)

// mailboxModuleId is the type part of every mailbox id. Mailbox ids are
// generated the same way the routers generate theirs, under the module name.
const mailboxModuleId = 0

func mailboxSpecifier() (specifier [20]byte) {
	copy(specifier[:], types.ModuleName)
	return specifier
}

var _ pdtypes.MailboxKeeper = (*Keeper)(nil)

// Keeper holds every mailbox instance and the routers through which mailboxes
// reach isms, hooks and recipient applications. Other modules register on the
// routers while the app is being built.
type Keeper struct {
	mailboxes        collections.Map[uint64, coretypes.Mailbox]
	latestDispatched collections.Map[uint64, util.HexAddress]
	sequence         collections.Sequence
	// delivered holds (mailbox internal id, message id) for every processed
	// message. Entries are never removed.
	delivered collections.KeySet[collections.Pair[uint64, []byte]]
	schema    collections.Schema

	ismRouter  *ismtypes.IsmRouter
	hookRouter *pdtypes.PostDispatchRouter
	appRouter  *types.AppRouter

	metrics types.Metrics
}

func NewKeeper(cdc codec.BinaryCodec, storeService corestore.KVStoreService) *Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	k := &Keeper{
		mailboxes:        collections.NewMap(sb, types.MailboxesKeyPrefix, "mailboxes", collections.Uint64Key, codec.CollValue[coretypes.Mailbox](cdc)),
		latestDispatched: collections.NewMap(sb, types.LatestDispatchedKeyPrefix, "latest_dispatched", collections.Uint64Key, message.HexAddressValue),
		sequence:         collections.NewSequence(sb, types.MailboxSequenceKey, "mailbox_sequence"),
		delivered:        collections.NewKeySet(sb, types.DeliveredKeyPrefix, "delivered", collections.PairKeyCodec(collections.Uint64Key, collections.BytesKey)),

		ismRouter:  util.NewRouter[util.InterchainSecurityModule](types.IsmRouterKey, types.IsmRouterName, sb),
		hookRouter: util.NewRouter[pdtypes.PostDispatchHookHandler](types.PostDispatchRouterKey, types.PostDispatchRouterName, sb),
		appRouter:  util.NewRouter[types.MessageHandler](types.AppRouterKey, types.AppRouterName, sb),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.schema = schema

	return k
}

func (k *Keeper) IsmRouter() *ismtypes.IsmRouter {
	return k.ismRouter
}

func (k *Keeper) PostDispatchRouter() *pdtypes.PostDispatchRouter {
	return k.hookRouter
}

func (k *Keeper) AppRouter() *types.AppRouter {
	return k.appRouter
}

// SetMetrics installs the collector that counts dispatched, processed and
// rejected messages.
func (k *Keeper) SetMetrics(metrics types.Metrics) {
	k.metrics = metrics
}

// Logger returns the module logger extracted using the sdk context.
func (k *Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// GetMailbox returns the mailbox stored under mailboxId. Ids from another
// router that share the internal id are not mailboxes.
func (k *Keeper) GetMailbox(ctx context.Context, mailboxId util.HexAddress) (types.Mailbox, error) {
	record, err := k.mailboxes.Get(ctx, mailboxId.GetInternalId())
	if errorsmod.IsOf(err, collections.ErrNotFound) || (err == nil && record.Id != mailboxId) {
		return types.Mailbox{}, errorsmod.Wrapf(types.ErrMailboxNotFound, "%s", mailboxId)
	}
	if err != nil {
		return types.Mailbox{}, err
	}
	return k.withLatestDispatched(ctx, record)
}

// Mailboxes returns every mailbox in id order.
func (k *Keeper) Mailboxes(ctx context.Context) ([]types.Mailbox, error) {
	iter, err := k.mailboxes.Iterate(ctx, nil)
	if err != nil {
		return nil, err
	}
	records, err := iter.Values()
	if err != nil {
		return nil, err
	}
	mailboxes := make([]types.Mailbox, 0, len(records))
	for _, record := range records {
		mailbox, err := k.withLatestDispatched(ctx, record)
		if err != nil {
			return nil, err
		}
		mailboxes = append(mailboxes, mailbox)
	}
	return mailboxes, nil
}

func (k *Keeper) withLatestDispatched(ctx context.Context, record coretypes.Mailbox) (types.Mailbox, error) {
	latest, err := k.latestDispatched.Get(ctx, record.Id.GetInternalId())
	if err != nil && !errorsmod.IsOf(err, collections.ErrNotFound) {
		return types.Mailbox{}, err
	}
	return types.MailboxFromRecord(record, latest), nil
}

// setMailbox writes the mailbox record and, once a message went out, the id
// of the latest one.
func (k *Keeper) setMailbox(ctx context.Context, mailbox types.Mailbox) error {
	internalId := mailbox.Id.GetInternalId()
	if err := k.mailboxes.Set(ctx, internalId, mailbox.Record()); err != nil {
		return err
	}
	if mailbox.MessageSent == 0 {
		return nil
	}
	return k.latestDispatched.Set(ctx, internalId, mailbox.LatestDispatchedId)
}

// LocalDomain implements pdtypes.MailboxKeeper.
func (k *Keeper) LocalDomain(ctx context.Context, mailboxId util.HexAddress) (uint32, error) {
	mailbox, err := k.GetMailbox(ctx, mailboxId)
	if err != nil {
		return 0, err
	}
	return mailbox.LocalDomain, nil
}

// IsLatestDispatched implements pdtypes.MailboxKeeper.
func (k *Keeper) IsLatestDispatched(ctx context.Context, mailboxId, messageId util.HexAddress) (bool, error) {
	mailbox, err := k.GetMailbox(ctx, mailboxId)
	if err != nil {
		return false, err
	}
	return mailbox.MessageSent > 0 && mailbox.LatestDispatchedId == messageId, nil
}

// Delivered reports whether messageId was processed by mailboxId.
func (k *Keeper) Delivered(ctx context.Context, mailboxId, messageId util.HexAddress) (bool, error) {
	return k.delivered.Has(ctx, collections.Join(mailboxId.GetInternalId(), messageId.Bytes()))
}

// RecipientIsm returns the ism that verifies messages for recipient: the one
// the recipient asks for, else the mailbox default.
func (k *Keeper) RecipientIsm(ctx context.Context, mailboxId, recipient util.HexAddress) (util.HexAddress, error) {
	mailbox, err := k.GetMailbox(ctx, mailboxId)
	if err != nil {
		return util.HexAddress{}, err
	}
	handler, err := k.recipient(ctx, recipient)
	if err != nil {
		return util.HexAddress{}, err
	}
	return k.recipientIsm(ctx, mailbox, handler, recipient)
}

func (k *Keeper) recipientIsm(ctx context.Context, mailbox types.Mailbox, handler types.MessageHandler, recipient util.HexAddress) (util.HexAddress, error) {
	ismId, err := handler.ReceiverIsmId(ctx, recipient)
	if err != nil {
		return util.HexAddress{}, err
	}
	if ismId != nil {
		return *ismId, nil
	}
	if mailbox.DefaultIsm != nil {
		return *mailbox.DefaultIsm, nil
	}
	return util.HexAddress{}, errorsmod.Wrapf(types.ErrNoIsmConfigured, "recipient %s, mailbox %s", recipient, mailbox.Id)
}

func (k *Keeper) recipient(ctx context.Context, recipient util.HexAddress) (types.MessageHandler, error) {
	handler, err := k.appRouter.GetModule(recipient)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrRecipientNotFound, "%s", recipient)
	}
	exists, err := (*handler).Exists(ctx, recipient)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errorsmod.Wrapf(types.ErrRecipientNotFound, "%s", recipient)
	}
	return *handler, nil
}

// rejected counts a failed entry point by the codespace and code of err.
func (k *Keeper) rejected(mailboxId util.HexAddress, err error) {
	if k.metrics == nil {
		return
	}
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	k.metrics.MessageRejected(mailboxId, fmt.Sprintf("%s/%d", codespace, code))
}
