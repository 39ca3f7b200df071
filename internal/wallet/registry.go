// internal/wallet/registry.go
package wallet

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/storyboardapp/backend/internal/protocol"
)

// State is what the wallet connector on the client last reported for one
// address. The server never signs anything; it only tracks connection and
// network so orchestrators can gate on them.
type State struct {
	Address   string    `json:"address"`
	ChainID   int64     `json:"chain_id"`
	Connected bool      `json:"connected"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Connector exposes the wallet capabilities this application consumes:
// connection state, the active network, and a switch-network request.
type Connector interface {
	State(address string) (State, bool)
	Report(state State)
	Disconnect(address string)
	PendingSwitch(address string) (int64, bool)
	EnsureChain(ctx context.Context, address string, chainID int64) error
}

// Registry is the in-process connector implementation. A switch request is
// recorded as a directive the client polls for; EnsureChain waits briefly
// for the wallet to settle on the target chain.
type Registry struct {
	mtx             sync.RWMutex
	states          map[string]State
	pendingSwitches map[string]int64

	switchWait   time.Duration
	pollInterval time.Duration
	log          *logrus.Entry
}

func NewRegistry() *Registry {
	return &Registry{
		states:          make(map[string]State),
		pendingSwitches: make(map[string]int64),
		switchWait:      10 * time.Second,
		pollInterval:    200 * time.Millisecond,
		log:             logrus.WithField("component", "wallet"),
	}
}

func normalize(address string) string {
	return strings.ToLower(address)
}

func (r *Registry) State(address string) (State, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	state, ok := r.states[normalize(address)]
	return state, ok
}

func (r *Registry) Report(state State) {
	if !common.IsHexAddress(state.Address) {
		return
	}

	state.UpdatedAt = time.Now()

	r.mtx.Lock()
	defer r.mtx.Unlock()

	key := normalize(state.Address)
	r.states[key] = state

	// A report on the target chain settles any outstanding directive.
	if target, ok := r.pendingSwitches[key]; ok && state.ChainID == target {
		delete(r.pendingSwitches, key)
	}
}

func (r *Registry) Disconnect(address string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	key := normalize(address)
	delete(r.states, key)
	delete(r.pendingSwitches, key)
}

// PendingSwitch returns the chain the client is being asked to switch to.
func (r *Registry) PendingSwitch(address string) (int64, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	target, ok := r.pendingSwitches[normalize(address)]
	return target, ok
}

// EnsureChain verifies the wallet is connected and on the required chain,
// requesting a network switch and waiting for it to settle when it is not.
// An unresolved switch is fatal to the calling operation.
func (r *Registry) EnsureChain(ctx context.Context, address string, chainID int64) error {
	state, ok := r.State(address)
	if !ok || !state.Connected {
		return protocol.NewError(protocol.KindWalletNotConnected, "wallet not connected")
	}

	if state.ChainID == chainID {
		return nil
	}

	r.log.WithFields(logrus.Fields{
		"address": state.Address,
		"from":    state.ChainID,
		"to":      chainID,
	}).Info("Requesting network switch")

	r.mtx.Lock()
	r.pendingSwitches[normalize(address)] = chainID
	r.mtx.Unlock()

	deadline := time.Now().Add(r.switchWait)
	for time.Now().Before(deadline) {
		select {
		case <-time.After(r.pollInterval):
		case <-ctx.Done():
			return ctx.Err()
		}

		if state, ok := r.State(address); ok && state.ChainID == chainID {
			return nil
		}
	}

	return protocol.NewError(protocol.KindWrongNetwork,
		fmt.Sprintf("wallet did not switch to chain %d", chainID))
}
