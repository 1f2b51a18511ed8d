package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/suite"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/merkle"
	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	"github.com/celestiaorg/hyperlane-mailbox/testutil"
	"github.com/celestiaorg/hyperlane-mailbox/x/postdispatch/keeper"
	"github.com/celestiaorg/hyperlane-mailbox/x/postdispatch/types"
)

const (
	owner       = "owner"
	localDomain = uint32(69420)
	routerName  = "router_post_dispatch"
)

var errUnknownMailbox = errorsmod.Register("postdispatch_test", 2, "unknown mailbox")

// mockMailboxKeeper knows a single mailbox and treats whatever message was
// passed to dispatch last as the latest dispatched one.
type mockMailboxKeeper struct {
	mailboxId util.HexAddress
	latest    util.HexAddress
}

func (m *mockMailboxKeeper) LocalDomain(_ context.Context, mailboxId util.HexAddress) (uint32, error) {
	if mailboxId != m.mailboxId {
		return 0, errUnknownMailbox
	}
	return localDomain, nil
}

func (m *mockMailboxKeeper) IsLatestDispatched(_ context.Context, mailboxId, messageId util.HexAddress) (bool, error) {
	if mailboxId != m.mailboxId {
		return false, errUnknownMailbox
	}
	return m.latest == messageId, nil
}

type KeeperTestSuite struct {
	suite.Suite

	ctx       sdk.Context
	hookStore corestore.KVStoreService
	keeper    *keeper.Keeper
	mailbox   *mockMailboxKeeper
	router    *types.PostDispatchRouter
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

func (suite *KeeperTestSuite) SetupTest() {
	hookKey := storetypes.NewKVStoreKey(types.StoreKey)
	routerKey := storetypes.NewKVStoreKey("router")
	suite.ctx = testutil.DefaultContext(suite.T(), hookKey, routerKey)

	sb := collections.NewSchemaBuilder(runtime.NewKVStoreService(routerKey))
	suite.router = util.NewRouter[types.PostDispatchHookHandler]([]byte{0}, routerName, sb)
	_, err := sb.Build()
	suite.Require().NoError(err)

	suite.mailbox = &mockMailboxKeeper{mailboxId: testutil.RouterAddress("mailbox", 0, 0)}
	suite.hookStore = runtime.NewKVStoreService(hookKey)
	suite.keeper = keeper.NewKeeper(suite.hookStore, suite.router, suite.mailbox)
}

func (suite *KeeperTestSuite) dispatch(nonce uint32) message.Message {
	msg := message.NewMessage(nonce, localDomain, util.CreateMockHexAddress("sender", 0), 1, util.CreateMockHexAddress("recipient", 0), []byte{byte(nonce)})
	suite.mailbox.latest = msg.Id()
	return msg
}

func (suite *KeeperTestSuite) TestRegisteredOnRouter() {
	hookId, err := suite.keeper.CreateNoopHook(suite.ctx, owner)
	suite.Require().NoError(err)

	suite.Require().Equal(testutil.RouterAddress(routerName, types.RouterModuleId, 0), hookId)

	handler, err := suite.router.GetModule(hookId)
	suite.Require().NoError(err)
	exists, err := (*handler).Exists(suite.ctx, hookId)
	suite.Require().NoError(err)
	suite.Require().True(exists)

	testCases := []struct {
		name string
		id   util.HexAddress
	}{
		{name: "unknown internal id", id: testutil.RouterAddress(routerName, types.RouterModuleId, 99)},
		{name: "ism id with the same internal id", id: testutil.RouterAddress("router_ism", types.RouterModuleId, 0)},
		{name: "mailbox id with the same internal id", id: suite.mailbox.mailboxId},
		{name: "other module type", id: testutil.RouterAddress(routerName, 1, 0)},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			exists, err := suite.keeper.Exists(suite.ctx, tc.id)
			suite.Require().NoError(err)
			suite.Require().False(exists)

			_, err = suite.keeper.QuoteDispatch(suite.ctx, suite.mailbox.mailboxId, tc.id, nil, suite.dispatch(0))
			suite.Require().ErrorIs(err, types.ErrHookNotFound)
		})
	}
}

func (suite *KeeperTestSuite) TestMerkleTreeHook() {
	_, err := suite.keeper.CreateMerkleTreeHook(suite.ctx, owner, testutil.RouterAddress("mailbox", 0, 7))
	suite.Require().ErrorIs(err, errUnknownMailbox)

	hookId, err := suite.keeper.CreateMerkleTreeHook(suite.ctx, owner, suite.mailbox.mailboxId)
	suite.Require().NoError(err)

	_, err = suite.keeper.LatestCheckpoint(suite.ctx, hookId)
	suite.Require().ErrorIs(err, types.ErrEmptyTree)

	expected := merkle.NewTree()
	for nonce := uint32(0); nonce < 3; nonce++ {
		msg := suite.dispatch(nonce)
		payment := sdk.NewCoins(sdk.NewInt64Coin("utia", 10))

		leftover, err := suite.keeper.PostDispatch(suite.ctx, suite.mailbox.mailboxId, hookId, nil, msg, payment)
		suite.Require().NoError(err)
		suite.Require().Equal(payment, leftover)
		suite.Require().NoError(expected.Insert(msg.Id()))
	}

	root, err := suite.keeper.Root(suite.ctx, hookId)
	suite.Require().NoError(err)
	suite.Require().Equal(expected.Root(), root)

	count, err := suite.keeper.Count(suite.ctx, hookId)
	suite.Require().NoError(err)
	suite.Require().Equal(uint32(3), count)

	checkpoint, err := suite.keeper.LatestCheckpoint(suite.ctx, hookId)
	suite.Require().NoError(err)
	suite.Require().Equal(message.Checkpoint{
		Origin:         localDomain,
		MerkleTreeHook: hookId,
		Root:           expected.Root(),
		Index:          2,
	}, checkpoint)

	var inserted int
	for _, event := range suite.ctx.EventManager().Events() {
		if event.Type == types.EventTypeInsertedIntoTree {
			inserted++
		}
	}
	suite.Require().Equal(3, inserted)
}

func (suite *KeeperTestSuite) TestMerkleTreeHookCreationIsAtomic() {
	suite.keeper.FailTreeWrites(suite.hookStore)

	_, err := suite.keeper.CreateMerkleTreeHook(suite.ctx, owner, suite.mailbox.mailboxId)
	suite.Require().ErrorIs(err, keeper.ErrTreeWrite)

	exists, err := suite.keeper.Exists(suite.ctx, testutil.RouterAddress(routerName, types.RouterModuleId, 0))
	suite.Require().NoError(err)
	suite.Require().False(exists)

	sequence, err := suite.router.GetInternalSequence(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Zero(sequence)
	suite.Require().Empty(suite.ctx.EventManager().Events())
}

func (suite *KeeperTestSuite) TestMerkleTreeHookRejects() {
	hookId, err := suite.keeper.CreateMerkleTreeHook(suite.ctx, owner, suite.mailbox.mailboxId)
	suite.Require().NoError(err)

	msg := suite.dispatch(0)
	_, err = suite.keeper.PostDispatch(suite.ctx, testutil.RouterAddress("mailbox", 0, 1), hookId, nil, msg, nil)
	suite.Require().ErrorIs(err, types.ErrInvalidMailbox)

	stale := suite.dispatch(1)
	suite.dispatch(2)
	_, err = suite.keeper.PostDispatch(suite.ctx, suite.mailbox.mailboxId, hookId, nil, stale, nil)
	suite.Require().ErrorIs(err, types.ErrNotLatestDispatched)

	count, err := suite.keeper.Count(suite.ctx, hookId)
	suite.Require().NoError(err)
	suite.Require().Zero(count)
}

func (suite *KeeperTestSuite) TestUnknownHook() {
	unknown := testutil.RouterAddress(routerName, types.RouterModuleId, 42)

	_, err := suite.keeper.PostDispatch(suite.ctx, suite.mailbox.mailboxId, unknown, nil, suite.dispatch(0), nil)
	suite.Require().ErrorIs(err, types.ErrHookNotFound)

	_, err = suite.keeper.QuoteDispatch(suite.ctx, suite.mailbox.mailboxId, unknown, nil, suite.dispatch(0))
	suite.Require().ErrorIs(err, types.ErrHookNotFound)

	noopId, err := suite.keeper.CreateNoopHook(suite.ctx, owner)
	suite.Require().NoError(err)
	_, err = suite.keeper.Root(suite.ctx, noopId)
	suite.Require().ErrorIs(err, types.ErrUnexpectedHookType)
}

func (suite *KeeperTestSuite) TestProtocolFeeHook() {
	fee := sdk.NewCoins(sdk.NewInt64Coin("utia", 100))
	hookId, err := suite.keeper.CreateProtocolFeeHook(suite.ctx, owner, fee, "")
	suite.Require().NoError(err)

	quote, err := suite.keeper.QuoteDispatch(suite.ctx, suite.mailbox.mailboxId, hookId, nil, suite.dispatch(0))
	suite.Require().NoError(err)
	suite.Require().True(fee.Equal(quote))

	testCases := []struct {
		name     string
		payment  sdk.Coins
		leftover sdk.Coins
		expErr   error
	}{
		{
			name:     "exact",
			payment:  fee,
			leftover: sdk.NewCoins(),
		},
		{
			name:     "overpaid",
			payment:  sdk.NewCoins(sdk.NewInt64Coin("utia", 150), sdk.NewInt64Coin("stake", 5)),
			leftover: sdk.NewCoins(sdk.NewInt64Coin("utia", 50), sdk.NewInt64Coin("stake", 5)),
		},
		{
			name:    "underpaid",
			payment: sdk.NewCoins(sdk.NewInt64Coin("utia", 99)),
			expErr:  types.ErrInsufficientPayment,
		},
		{
			name:    "wrong denom",
			payment: sdk.NewCoins(sdk.NewInt64Coin("stake", 1000)),
			expErr:  types.ErrInsufficientPayment,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			leftover, err := suite.keeper.PostDispatch(suite.ctx, suite.mailbox.mailboxId, hookId, nil, suite.dispatch(0), tc.payment)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}
			suite.Require().NoError(err)
			suite.Require().True(tc.leftover.Equal(leftover), "expected %s, got %s", tc.leftover, leftover)
		})
	}

	collected, err := suite.keeper.CollectedFees(suite.ctx, hookId)
	suite.Require().NoError(err)
	suite.Require().True(sdk.NewCoins(sdk.NewInt64Coin("utia", 200)).Equal(collected))

	_, err = suite.keeper.ClaimFees(suite.ctx, "someone", hookId)
	suite.Require().ErrorIs(err, types.ErrInvalidOwner)

	claimed, err := suite.keeper.ClaimFees(suite.ctx, owner, hookId)
	suite.Require().NoError(err)
	suite.Require().True(collected.Equal(claimed))

	collected, err = suite.keeper.CollectedFees(suite.ctx, hookId)
	suite.Require().NoError(err)
	suite.Require().True(collected.IsZero())
}

func (suite *KeeperTestSuite) TestSetProtocolFee() {
	hookId, err := suite.keeper.CreateProtocolFeeHook(suite.ctx, owner, sdk.NewCoins(sdk.NewInt64Coin("utia", 1)), "beneficiary")
	suite.Require().NoError(err)

	newFee := sdk.NewCoins(sdk.NewCoin("utia", math.NewInt(7)))
	suite.Require().ErrorIs(suite.keeper.SetProtocolFee(suite.ctx, "beneficiary", hookId, newFee), types.ErrInvalidOwner)
	suite.Require().NoError(suite.keeper.SetProtocolFee(suite.ctx, owner, hookId, newFee))

	quote, err := suite.keeper.QuoteDispatch(suite.ctx, suite.mailbox.mailboxId, hookId, nil, suite.dispatch(0))
	suite.Require().NoError(err)
	suite.Require().True(newFee.Equal(quote))

	invalid := sdk.Coins{sdk.Coin{Denom: "utia", Amount: math.NewInt(-1)}}
	suite.Require().ErrorIs(suite.keeper.SetProtocolFee(suite.ctx, owner, hookId, invalid), types.ErrInvalidFee)

	hook, err := suite.keeper.GetHook(suite.ctx, hookId)
	suite.Require().NoError(err)
	suite.Require().Equal("beneficiary", hook.Beneficiary)
	suite.Require().True(newFee.Equal(hook.Fee))
}
