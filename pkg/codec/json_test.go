package codec_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/codec"
)

type record struct {
	Id   util.HexAddress `json:"id"`
	Fee  sdk.Coins       `json:"fee"`
	Note string          `json:"note,omitempty"`
}

func TestJSONValue(t *testing.T) {
	c := codec.JSONValue[record]("test/record")
	require.Equal(t, "test/record", c.ValueType())

	value := record{
		Id:  util.CreateMockHexAddress("test", 2),
		Fee: sdk.NewCoins(sdk.NewCoin("utia", math.NewInt(100))),
	}

	bz, err := c.Encode(value)
	require.NoError(t, err)

	decoded, err := c.Decode(bz)
	require.NoError(t, err)
	require.Equal(t, value.Id, decoded.Id)
	require.True(t, value.Fee.Equal(decoded.Fee))

	_, err = c.Decode([]byte("{"))
	require.ErrorContains(t, err, "test/record")
}
