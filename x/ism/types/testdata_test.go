package types_test

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

const (
	// relayer captured message and checkpoint for a message-id multisig ISM
	relayerMessage   = "0300000000000000010000000000000000000000007ff2bf58c38a41ad7c9cbc14e780e8a7edbbd48d00002105000000000000000000000000811808dd29ba8b0fc6c0ec0b5537035e5974516248656c6c6f21"
	relayerHook      = "00000000000000000000000048e6c30b97748d1e2e03bf3e9fbe3890ca5f8cca"
	relayerRoot      = "db278688f4f929bb03c76e57866ca41290dc63a1069752507fe6d20f307f1538"
	relayerSignature = "3aeb79d0e542b8363144fe5286b1f8f6392d75d3220d9eca0ac20bb0cd41236d0e5eafcce7e6105cc282caa68ce73d095f80f111cde5a8f13e80bd8ddb0b91271b"
	relayerValidator = "0x03c842db86a6a3e524d4a6615390c1ea8e2b9541"

	// merkle-root multisig metadata over a message from domain 31337
	merkleRootMessage   = "030000000000007a690000000000000000000000004a679253410272dd5232b3ff7cf5dbb88f29531904861f2e726f757465725f617070000000000000000000000000000100000000000000000000000000000000000000009022fae177099ff75c2010db21e05da50bcb109100000000000000000000000000000000000000000000000000000000000f4240"
	merkleRootValidator = "0x0c60e7ecd06429052223c78452f791aab5c5cac6"
	merkleRootMetadata  = "000000000000000000000000b7f8bc63bbcad18155201308c8f3540b07f84f5e000000007d444379286585e7899dfa4e9ee5687d893dace3cef71f79e882703d52f17dc70000000000000000000000000000000000000000000000000000000000000000ad3228b676f7d3cd4284a5443f17f1962b36e491b30a40b2405849e597ba5fb5b4c11951957c6f8f642c4af61cd6b24640fec6dc7fc607ee8206a99e92410d3021ddb9a356815c3fac1026b6dec5df3124afbadb485c9ba5a3e3398a04b7ba85e58769b32a1beaf1ea27375a44095a0d1fb664ce2dd358e7fcbfb78c26a193440eb01ebfc9ed27500cd4dfc979272d1f0913cc9f66540d7e8005811109e1cf2d887c22bd8750d34016ac3c66b5ff102dacdd73f6b014e710b51e8022af9a1968ffd70157e48063fc33c97a050f7f640233bf646cc98d9524c6b92bcf3ab56f839867cc5f7f196b93bae1e27e6320742445d290f2263827498b54fec539f756afcefad4e508c098b9a7e1d8feb19955fb02ba9675585078710969d3440f5054e0f9dc3e7fe016e050eff260334f18a5d4fe391d82092319f5964f2e2eb7c1c3a5f8b13a49e282f609c317a833fb8d976d11517c571d1221a265d25af778ecf8923490c6ceeb450aecdc82e28293031d10c7d73bf85e57bf041a97360aa2c5d99cc1df82d9c4b87413eae2ef048f94b4d3554cea73d92b0f7af96e0271c691e2bb5c67add7c6caf302256adedf7ab114da0acfe870d449a3a489f781d659e8beccda7bce9f4e8618b6bd2f4132ce798cdc7a60e7e1460a7299e3c6342a579626d22733e50f526ec2fa19a22b31e8ed50f23cd1fdf94c9154ed3a7609a2f1ff981fe1d3b5c807b281e4683cc6d6315cf95b9ade8641defcb32372f1c126e398ef7a5a2dce0a8a7f68bb74560f8f71837c2c2ebbcbf7fffb42ae1896f13f7c7479a0b46a28b6f55540f89444f63de0378e3d121be09e06cc9ded1c20e65876d36aa0c65e9645644786b620e2dd2ad648ddfcbf4a7e5b1a3a4ecfe7f64667a3f0b7e2f4418588ed35a2458cffeb39b93d26f18d2ab13bdce6aee58e7b99359ec2dfd95a9c16dc00d6ef18b7933a6f8dc65ccb55667138776f7dea101070dc8796e3774df84f40ae0c8229d0d6069e5c8f39a7c299677a09d367fc7b05e3bc380ee652cdc72595f74c7b1043d0e1ffbab734648c838dfb0527d971b602bc216c9619ef0abf5ac974a1ed57f4050aa510dd9c74f508277b39d7973bb2dfccc5eeb0618db8cd74046ff337f0a7bf2c8e03e10f642c1886798d71806ab1e888d9e5ee87d0838c5655cb21c6cb83313b5a631175dff4963772cce9108188b34ac87c81c41e662ee4dd2dd7b2bc707961b1e646c4047669dcb6584f0d8d770daf5d7e7deb2e388ab20e2573d171a88108e79d820e98f26c0b84aa8b2f4aa4968dbb818ea32293237c50ba75ee485f4c22adf2f741400bdf8d6a9cc7df7ecae576221665d7358448818bb4ae4562849e949e17ac16e0be16688e156b5cf15e098c627c0056a900000000aeae4828232950be5882dc4a7dc3f87c6f7524b09693f622191915dfd47982250aae8da55df59ef2b8fe3c1a08122a2e37babee29f8356e67eee96f40ce2c5031c"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	bz, err := hex.DecodeString(s)
	require.NoError(t, err)
	return bz
}

func to32(t *testing.T, s string) (out [32]byte) {
	t.Helper()
	copy(out[:], mustHex(t, s))
	return out
}

// testValidators returns n deterministic keys and their addresses.
func testValidators(t *testing.T, n int) ([]*ecdsa.PrivateKey, []common.Address) {
	t.Helper()
	keys := make([]*ecdsa.PrivateKey, n)
	addrs := make([]common.Address, n)
	for i := 0; i < n; i++ {
		key, err := crypto.HexToECDSA(fmt.Sprintf("%064x", i+1))
		require.NoError(t, err)
		keys[i] = key
		addrs[i] = crypto.PubkeyToAddress(key.PublicKey)
	}
	return keys, addrs
}
