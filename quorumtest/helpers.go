/*
Package quorumtest provides helpers for testing wallet code: random
identities, a scriptable external caller and an event recording sink.
*/
package quorumtest

import (
	"context"
	"crypto/rand"
	"sync"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x/wallet"
)

// NewCondition returns a random owner identity.
func NewCondition() quorum.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return quorum.NewCondition("sigs", "ed25519", data)
}

// NewAddress returns the address of a random owner identity.
func NewAddress() quorum.Address {
	return NewCondition().Address()
}

// CallRecord captures one forwarded call.
type CallRecord struct {
	Target  quorum.Address
	Amount  int64
	Payload []byte
}

// Caller is an ExternalCaller implementation that records all forwarded
// calls and returns a scripted result.
type Caller struct {
	mu sync.Mutex

	// Err is returned by every call. Nil means success.
	Err error

	// Hook, when set, runs during the forwarded call. Use it to test
	// re-entrant behaviour.
	Hook func(ctx context.Context)

	calls []CallRecord
}

var _ quorum.ExternalCaller = (*Caller)(nil)

func (c *Caller) Call(ctx context.Context, target quorum.Address, amount int64, payload []byte) error {
	c.mu.Lock()
	c.calls = append(c.calls, CallRecord{
		Target:  target.Clone(),
		Amount:  amount,
		Payload: append([]byte(nil), payload...),
	})
	hook := c.Hook
	err := c.Err
	c.mu.Unlock()

	if hook != nil {
		hook(ctx)
	}
	return err
}

// Calls returns all forwarded calls recorded so far.
func (c *Caller) Calls() []CallRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	calls := make([]CallRecord, len(c.calls))
	copy(calls, c.calls)
	return calls
}

// CallCount returns the number of forwarded calls recorded so far.
func (c *Caller) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// Sink records all published events.
type Sink struct {
	mu     sync.Mutex
	events []wallet.Event
}

var _ wallet.Sink = (*Sink)(nil)

func (s *Sink) Publish(ev wallet.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// Events returns all recorded events in publication order.
func (s *Sink) Events() []wallet.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]wallet.Event, len(s.events))
	copy(events, s.events)
	return events
}

// EventsOfKind returns the recorded events of the given kind.
func (s *Sink) EventsOfKind(kind wallet.EventKind) []wallet.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []wallet.Event
	for _, ev := range s.events {
		if ev.Kind == kind {
			events = append(events, ev)
		}
	}
	return events
}
