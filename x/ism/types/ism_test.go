package types_test

import (
	"context"
	"testing"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	"github.com/celestiaorg/hyperlane-mailbox/x/ism/types"
)

func TestMessageIdMultisigISMVerify(t *testing.T) {
	msg, err := message.ParseMessage(mustHex(t, relayerMessage))
	require.NoError(t, err)

	ism := &types.MessageIdMultisigISM{
		Id: util.GenerateHexAddress([20]byte{}, uint32(types.RouterModuleId), 1),
		ValidatorSet: types.ValidatorSet{
			Validators: []common.Address{common.HexToAddress(relayerValidator)},
			Threshold:  1,
		},
	}

	ok, err := ism.Verify(context.Background(), relayerMetadata(t, relayerRoot), msg)
	require.NoError(t, err)
	require.True(t, ok)

	// a different signed root recovers some other signer
	tampered := "e" + relayerRoot[1:]
	ok, err = ism.Verify(context.Background(), relayerMetadata(t, tampered), msg)
	require.ErrorIs(t, err, types.ErrThresholdNotReached)
	require.False(t, ok)

	_, err = ism.Verify(context.Background(), mustHex(t, relayerHook), msg)
	require.ErrorIs(t, err, types.ErrInvalidMetadataLength)
}

func TestMerkleRootMultisigISMVerify(t *testing.T) {
	msg, err := message.ParseMessage(mustHex(t, merkleRootMessage))
	require.NoError(t, err)
	require.Equal(t, uint32(31337), msg.Origin)

	ism := &types.MerkleRootMultisigISM{
		Id: util.GenerateHexAddress([20]byte{}, uint32(types.RouterModuleId), 2),
		ValidatorSet: types.ValidatorSet{
			Validators: []common.Address{common.HexToAddress(merkleRootValidator)},
			Threshold:  1,
		},
	}

	ok, err := ism.Verify(context.Background(), mustHex(t, merkleRootMetadata), msg)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMerkleRootMultisigISMRejects(t *testing.T) {
	msg, err := message.ParseMessage(mustHex(t, merkleRootMessage))
	require.NoError(t, err)

	ism := &types.MerkleRootMultisigISM{
		ValidatorSet: types.ValidatorSet{
			Validators: []common.Address{
				common.HexToAddress(merkleRootValidator),
				common.HexToAddress("0x1c60e7eCd06429052223C78452F791AAb5C5CAc7"),
			},
			Threshold: 2,
		},
	}

	// one signature cannot satisfy a threshold of two
	_, err = ism.Verify(context.Background(), mustHex(t, merkleRootMetadata), msg)
	require.ErrorIs(t, err, types.ErrThresholdNotReached)

	// metadata proves a different message
	raw := mustHex(t, merkleRootMessage)
	raw[0] = 1
	tampered, err := message.ParseMessage(raw)
	require.NoError(t, err)

	ism.Threshold = 1
	ok, err := ism.Verify(context.Background(), mustHex(t, merkleRootMetadata), tampered)
	require.ErrorIs(t, err, types.ErrMessageIdMismatch)
	require.False(t, ok)
}

func TestCompositeISMsVerifyThroughKeeper(t *testing.T) {
	msg := message.NewMessage(0, 1, util.HexAddress{}, 2, util.HexAddress{}, nil)

	_, err := (&types.RoutingISM{}).Verify(context.Background(), nil, msg)
	require.ErrorIs(t, err, sdkerrors.ErrNotSupported)

	_, err = (&types.AggregationISM{}).Verify(context.Background(), nil, msg)
	require.ErrorIs(t, err, sdkerrors.ErrNotSupported)

	ok, err := (&types.NoopISM{}).Verify(context.Background(), nil, msg)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAggregationISMValidate(t *testing.T) {
	a := util.GenerateHexAddress([20]byte{}, 0, 1)
	b := util.GenerateHexAddress([20]byte{}, 0, 2)
	self := util.GenerateHexAddress([20]byte{}, 0, 3)

	testCases := []struct {
		name   string
		ism    types.AggregationISM
		expErr bool
	}{
		{name: "valid", ism: types.AggregationISM{Id: self, Modules: []util.HexAddress{a, b}, Threshold: 1}},
		{name: "zero threshold", ism: types.AggregationISM{Id: self, Modules: []util.HexAddress{a, b}}, expErr: true},
		{name: "threshold above modules", ism: types.AggregationISM{Id: self, Modules: []util.HexAddress{a}, Threshold: 2}, expErr: true},
		{name: "duplicate", ism: types.AggregationISM{Id: self, Modules: []util.HexAddress{a, a}, Threshold: 1}, expErr: true},
		{name: "self reference", ism: types.AggregationISM{Id: self, Modules: []util.HexAddress{a, self}, Threshold: 1}, expErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ism.Validate()
			if tc.expErr {
				require.ErrorIs(t, err, types.ErrInvalidAggregation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestIsmValueCodec(t *testing.T) {
	_, validators := testValidators(t, 2)
	id := util.GenerateHexAddress([20]byte{}, uint32(types.RouterModuleId), 9)

	isms := []types.HyperlaneInterchainSecurityModule{
		&types.MessageIdMultisigISM{Id: id, Owner: "alice", ValidatorSet: types.ValidatorSet{Validators: validators, Threshold: 2}},
		&types.MerkleRootMultisigISM{Id: id, Owner: "alice", ValidatorSet: types.ValidatorSet{Validators: validators, Threshold: 1}},
		&types.NoopISM{Id: id, Owner: "bob"},
		&types.RoutingISM{Id: id, Owner: "carol"},
		&types.AggregationISM{Id: id, Owner: "dave", Modules: []util.HexAddress{util.GenerateHexAddress([20]byte{}, 0, 1)}, Threshold: 1},
	}

	for _, ism := range isms {
		t.Run(ism.ModuleType().String(), func(t *testing.T) {
			bz, err := types.IsmValueCodec.Encode(ism)
			require.NoError(t, err)
			require.Equal(t, byte(ism.ModuleType()), bz[0])

			decoded, err := types.IsmValueCodec.Decode(bz)
			require.NoError(t, err)
			require.Equal(t, ism, decoded)
		})
	}

	_, err := types.IsmValueCodec.Decode([]byte{byte(types.ModuleTypeCcipRead), '{', '}'})
	require.ErrorIs(t, err, types.ErrUnexpectedIsmType)
}
