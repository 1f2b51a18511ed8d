package app

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	storemetrics "cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	tmproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/celestiaorg/hyperlane-mailbox/app/metrics"
	inboxkeeper "github.com/celestiaorg/hyperlane-mailbox/x/inbox/keeper"
	inboxtypes "github.com/celestiaorg/hyperlane-mailbox/x/inbox/types"
	ismkeeper "github.com/celestiaorg/hyperlane-mailbox/x/ism/keeper"
	ismtypes "github.com/celestiaorg/hyperlane-mailbox/x/ism/types"
	mailboxkeeper "github.com/celestiaorg/hyperlane-mailbox/x/mailbox/keeper"
	mailboxtypes "github.com/celestiaorg/hyperlane-mailbox/x/mailbox/types"
	postdispatchkeeper "github.com/celestiaorg/hyperlane-mailbox/x/postdispatch/keeper"
	postdispatchtypes "github.com/celestiaorg/hyperlane-mailbox/x/postdispatch/types"
)

// App mounts the stores of every module on one multistore and wires the
// keepers together through the mailbox routers.
type App struct {
	logger log.Logger
	cms    storetypes.CommitMultiStore
	keys   map[string]*storetypes.KVStoreKey

	MailboxKeeper      *mailboxkeeper.Keeper
	IsmKeeper          *ismkeeper.Keeper
	PostDispatchKeeper *postdispatchkeeper.Keeper
	InboxKeeper        *inboxkeeper.Keeper
}

type options struct {
	registerer prometheus.Registerer
}

// Option configures New.
type Option func(*options)

// WithMetrics registers mailbox metrics with registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = registerer
	}
}

// New creates the app on db, loading the latest committed version.
func New(logger log.Logger, db dbm.DB, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	keys := storetypes.NewKVStoreKeys(
		mailboxtypes.StoreKey,
		ismtypes.StoreKey,
		postdispatchtypes.StoreKey,
		inboxtypes.StoreKey,
	)

	cms := store.NewCommitMultiStore(db, logger, storemetrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, err
	}

	app := &App{
		logger: NewReplayLoggerWrapper(logger),
		cms:    cms,
		keys:   keys,
	}

	cdc := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())

	app.MailboxKeeper = mailboxkeeper.NewKeeper(cdc, runtime.NewKVStoreService(keys[mailboxtypes.StoreKey]))
	app.IsmKeeper = ismkeeper.NewKeeper(runtime.NewKVStoreService(keys[ismtypes.StoreKey]), app.MailboxKeeper.IsmRouter())
	app.PostDispatchKeeper = postdispatchkeeper.NewKeeper(
		runtime.NewKVStoreService(keys[postdispatchtypes.StoreKey]),
		app.MailboxKeeper.PostDispatchRouter(),
		app.MailboxKeeper,
	)
	app.InboxKeeper = inboxkeeper.NewKeeper(
		runtime.NewKVStoreService(keys[inboxtypes.StoreKey]),
		app.MailboxKeeper.AppRouter(),
		app.MailboxKeeper,
	)

	if o.registerer != nil {
		m, err := metrics.NewMailboxMetrics(o.registerer)
		if err != nil {
			return nil, err
		}
		app.MailboxKeeper.SetMetrics(m)
	}

	return app, nil
}

// NewContext returns a context writing straight to the multistore. Writes
// persist on the next Commit.
func (app *App) NewContext(height int64, blockTime time.Time) sdk.Context {
	header := tmproto.Header{Height: height, Time: blockTime}
	return sdk.NewContext(app.cms, header, false, app.logger)
}

// Commit persists all writes and returns the new version.
func (app *App) Commit() storetypes.CommitID {
	return app.cms.Commit()
}

func (app *App) LastCommitID() storetypes.CommitID {
	return app.cms.LastCommitID()
}

func (app *App) Logger() log.Logger {
	return app.logger
}

// GetKey returns the KVStoreKey for the provided store key.
func (app *App) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}
