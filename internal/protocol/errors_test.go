// internal/protocol/errors_test.go
package protocol

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		message string
		want    ErrorKind
	}{
		{"License terms already attached to this IP", KindAlreadyAttached},
		{"execution reverted: LicenseTermsAlreadyAttached", KindAlreadyAttached},
		{"execution reverted: IPAlreadyRegistered", KindAlreadyRegistered},
		{"caller is not the owner", KindNotOwner},
		{"MetaMask Tx Signature: User denied transaction signature", KindUserRejected},
		{"insufficient funds for gas * price + value", KindInsufficientBalance},
		{"request unauthorized", KindPermissionDenied},
		{"invalid address provided", KindInvalidParams},
		{"wallet not connected", KindWalletNotConnected},
		{"unsupported chain id", KindWrongNetwork},
		{"no claimable revenue for this token", KindNothingToClaim},
		{"claimer is not a token holder", KindNotTokenHolder},
		{"something completely unexpected", KindGeneric},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			classified := Classify(errors.New(tc.message))
			assert.Equal(t, tc.want, classified.Kind)
			// The original message survives classification.
			assert.Equal(t, tc.message, classified.Message)
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestClassifyPassesThroughTaggedErrors(t *testing.T) {
	tagged := NewError(KindWrongNetwork, "insufficient funds") // message would classify differently
	classified := Classify(tagged)
	assert.Equal(t, KindWrongNetwork, classified.Kind)
}

func TestClassifyUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("attach failed: %w", NewError(KindAlreadyAttached, "already attached"))
	classified := Classify(wrapped)
	require.NotNil(t, classified)
	assert.Equal(t, KindAlreadyAttached, classified.Kind)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUserRejected, KindOf(NewError(KindUserRejected, "user rejected")))
	assert.Equal(t, KindUserRejected, KindOf(fmt.Errorf("wrapped: %w", NewError(KindUserRejected, "no"))))
	assert.Equal(t, KindGeneric, KindOf(errors.New("plain")))
}
