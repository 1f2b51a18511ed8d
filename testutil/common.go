package testutil

import (
	"crypto/ecdsa"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/hyperlane-mailbox/app"
	"github.com/celestiaorg/hyperlane-mailbox/pkg/ethsig"
	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	ismtypes "github.com/celestiaorg/hyperlane-mailbox/x/ism/types"
)

// TestEnv is a fully wired app over an in-memory database together with a
// context writing to it.
type TestEnv struct {
	App *app.App
	Ctx sdk.Context
}

func NewTestEnv(t testing.TB, opts ...app.Option) TestEnv {
	t.Helper()

	testApp, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), opts...)
	require.NoError(t, err)

	return TestEnv{
		App: testApp,
		Ctx: testApp.NewContext(1234567, time.Date(2020, time.April, 22, 12, 0, 0, 0, time.UTC)),
	}
}

// RouterAddress returns the id a router called name hands out to moduleId
// for internalId.
func RouterAddress(name string, moduleId uint8, internalId uint64) util.HexAddress {
	var specifier [20]byte
	copy(specifier[:], name)
	return util.GenerateHexAddress(specifier, uint32(moduleId), internalId)
}

// Validators returns n validator keys derived from the scalars 1..n and
// their addresses, in that order.
func Validators(t testing.TB, n int) ([]*ecdsa.PrivateKey, []common.Address) {
	t.Helper()

	keys := make([]*ecdsa.PrivateKey, n)
	addresses := make([]common.Address, n)
	for i := range keys {
		key, err := crypto.HexToECDSA(fmt.Sprintf("%064x", i+1))
		require.NoError(t, err)
		keys[i] = key
		addresses[i] = crypto.PubkeyToAddress(key.PublicKey)
	}
	return keys, addresses
}

// SignMessageIdMetadata returns message-id multisig metadata for msg with a
// signature from every key, in the order given.
func SignMessageIdMetadata(t testing.TB, keys []*ecdsa.PrivateKey, merkleTreeHook util.HexAddress, root [32]byte, index uint32, msg message.Message) []byte {
	t.Helper()

	metadata := ismtypes.MessageIdMultisigMetadata{
		MerkleTreeHook: merkleTreeHook,
		SignedRoot:     root,
		SignedIndex:    index,
	}
	digest := metadata.Digest(msg)
	for _, key := range keys {
		sig, err := ethsig.Sign(digest[:], key)
		require.NoError(t, err)
		metadata.Signatures = append(metadata.Signatures, sig)
	}
	return metadata.Bytes()
}
