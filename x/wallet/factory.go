package wallet

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/store"
)

// Factory creates independent wallet engines and records them for
// enumeration. It owns only the list of created instances, never their
// state.
type Factory struct {
	mu       sync.Mutex
	caller   quorum.ExternalCaller
	sink     Sink
	newStore func() store.CacheableKVStore
	wallets  []*Engine
}

// NewFactory returns a factory creating wallets that forward calls through
// the given caller and publish events to the given sink. A nil sink drops
// all events.
func NewFactory(caller quorum.ExternalCaller, sink Sink) *Factory {
	if sink == nil {
		sink = NopSink{}
	}
	return &Factory{
		caller:   caller,
		sink:     sink,
		newStore: store.MemStore,
	}
}

// CreateWallet constructs a new independent wallet. Construction invariants
// (at least one owner, all unique, none empty, threshold within [1, number
// of owners]) are enforced by the engine and propagated.
func (f *Factory) CreateWallet(ctx context.Context, owners []quorum.Address, threshold uint32) (*Engine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := orm.EncodeSequence(int64(len(f.wallets)))
	engine, err := NewEngine(WalletCondition(id), f.newStore(), f.caller, f.sink, owners, threshold)
	if err != nil {
		return nil, err
	}
	f.wallets = append(f.wallets, engine)

	// owners are included in the payload so observers can index the full
	// initial configuration
	payload, _ := json.Marshal(owners)
	f.sink.Publish(Event{
		Kind:      EventWalletCreated,
		Wallet:    engine.Address(),
		Proposal:  -1,
		Actor:     quorum.Caller(ctx),
		Threshold: threshold,
		Payload:   payload,
	})
	return engine, nil
}

// WalletCount returns the number of wallets created so far.
func (f *Factory) WalletCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.wallets)
}

// Wallets returns all created wallets in creation order.
func (f *Factory) Wallets() []*Engine {
	f.mu.Lock()
	defer f.mu.Unlock()
	wallets := make([]*Engine, len(f.wallets))
	copy(wallets, f.wallets)
	return wallets
}
