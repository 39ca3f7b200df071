// internal/wallet/registry_test.go
package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyboardapp/backend/internal/protocol"
)

const testAddress = "0x1234567890ABCDEF1234567890abcdef12345678"

func newTestRegistry() *Registry {
	r := NewRegistry()
	r.switchWait = 200 * time.Millisecond
	r.pollInterval = 10 * time.Millisecond
	return r
}

func TestRegistryReportAndState(t *testing.T) {
	r := newTestRegistry()

	r.Report(State{Address: testAddress, ChainID: 1315, Connected: true})

	// Lookup is case-insensitive on the address.
	state, ok := r.State("0x1234567890abcdef1234567890abcdef12345678")
	require.True(t, ok)
	assert.Equal(t, int64(1315), state.ChainID)
	assert.True(t, state.Connected)
	assert.False(t, state.UpdatedAt.IsZero())
}

func TestRegistryReportRejectsBadAddress(t *testing.T) {
	r := newTestRegistry()

	r.Report(State{Address: "not-an-address", ChainID: 1315, Connected: true})

	_, ok := r.State("not-an-address")
	assert.False(t, ok)
}

func TestRegistryDisconnect(t *testing.T) {
	r := newTestRegistry()

	r.Report(State{Address: testAddress, ChainID: 1315, Connected: true})
	r.Disconnect(testAddress)

	_, ok := r.State(testAddress)
	assert.False(t, ok)
}

func TestEnsureChainNotConnected(t *testing.T) {
	r := newTestRegistry()

	err := r.EnsureChain(context.Background(), testAddress, 1315)
	assert.Equal(t, protocol.KindWalletNotConnected, protocol.KindOf(err))

	// A disconnected report is treated the same as no report.
	r.Report(State{Address: testAddress, ChainID: 1315, Connected: false})
	err = r.EnsureChain(context.Background(), testAddress, 1315)
	assert.Equal(t, protocol.KindWalletNotConnected, protocol.KindOf(err))
}

func TestEnsureChainAlreadyOnChain(t *testing.T) {
	r := newTestRegistry()

	r.Report(State{Address: testAddress, ChainID: 1315, Connected: true})
	assert.NoError(t, r.EnsureChain(context.Background(), testAddress, 1315))

	// No directive is recorded when no switch is needed.
	_, pending := r.PendingSwitch(testAddress)
	assert.False(t, pending)
}

func TestEnsureChainSettlesOnReport(t *testing.T) {
	r := newTestRegistry()

	r.Report(State{Address: testAddress, ChainID: 1, Connected: true})

	done := make(chan error, 1)
	go func() {
		done <- r.EnsureChain(context.Background(), testAddress, 1315)
	}()

	// The client polls the directive and reports back on the target chain.
	require.Eventually(t, func() bool {
		target, ok := r.PendingSwitch(testAddress)
		return ok && target == 1315
	}, time.Second, 5*time.Millisecond)

	r.Report(State{Address: testAddress, ChainID: 1315, Connected: true})

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("EnsureChain did not settle")
	}

	_, pending := r.PendingSwitch(testAddress)
	assert.False(t, pending)
}

func TestEnsureChainTimesOut(t *testing.T) {
	r := newTestRegistry()

	r.Report(State{Address: testAddress, ChainID: 1, Connected: true})

	err := r.EnsureChain(context.Background(), testAddress, 1315)
	assert.Equal(t, protocol.KindWrongNetwork, protocol.KindOf(err))
}

func TestEnsureChainHonorsContext(t *testing.T) {
	r := newTestRegistry()
	r.switchWait = 10 * time.Second

	r.Report(State{Address: testAddress, ChainID: 1, Connected: true})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := r.EnsureChain(ctx, testAddress, 1315)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
