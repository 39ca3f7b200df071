// internal/utils/signature.go
package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// PersonalMessageHash hashes a message the way eth_sign / personal_sign
// does, with the Ethereum message prefix.
func PersonalMessageHash(message string) common.Hash {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	return crypto.Keccak256Hash([]byte(prefixed))
}

// RecoverSigner recovers the address that produced a personal_sign
// signature over message.
func RecoverSigner(message, signatureHex string) (common.Address, error) {
	signature, err := hexutil.Decode(signatureHex)
	if err != nil {
		return common.Address{}, fmt.Errorf("malformed signature: %w", err)
	}

	if len(signature) != 65 {
		return common.Address{}, errors.New("signature must be 65 bytes")
	}

	// Wallets return v as 27/28; go-ethereum expects 0/1.
	sig := make([]byte, 65)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	pubKey, err := crypto.SigToPub(PersonalMessageHash(message).Bytes(), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}

// VerifySignature reports whether signatureHex over message was produced by
// address.
func VerifySignature(address, message, signatureHex string) bool {
	if !common.IsHexAddress(address) {
		return false
	}

	signer, err := RecoverSigner(message, signatureHex)
	if err != nil {
		return false
	}

	return strings.EqualFold(signer.Hex(), address)
}
