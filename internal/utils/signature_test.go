// internal/utils/signature_test.go
package utils

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signMessage(t *testing.T, message string) (address, signature string) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig, err := crypto.Sign(PersonalMessageHash(message).Bytes(), key)
	require.NoError(t, err)

	// Wallets report v as 27/28.
	sig[64] += 27

	return crypto.PubkeyToAddress(key.PublicKey).Hex(), hexutil.Encode(sig)
}

func TestRecoverSigner(t *testing.T) {
	message := "Connect to StoryBoard\nAddress: 0xabc"
	address, signature := signMessage(t, message)

	recovered, err := RecoverSigner(message, signature)
	require.NoError(t, err)
	assert.Equal(t, address, recovered.Hex())
}

func TestVerifySignature(t *testing.T) {
	message := "hello"
	address, signature := signMessage(t, message)

	assert.True(t, VerifySignature(address, message, signature))

	// Wrong message fails.
	assert.False(t, VerifySignature(address, "tampered", signature))

	// Wrong address fails.
	other, _ := signMessage(t, message)
	assert.False(t, VerifySignature(other, message, signature))

	// Malformed inputs fail without panicking.
	assert.False(t, VerifySignature("not-an-address", message, signature))
	assert.False(t, VerifySignature(address, message, "0x1234"))
	assert.False(t, VerifySignature(address, message, "garbage"))
}
