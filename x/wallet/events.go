package wallet

import (
	"github.com/iov-one/quorum"
)

// EventKind names an observable wallet state transition.
type EventKind string

const (
	EventWalletCreated    EventKind = "wallet-created"
	EventSubmitted        EventKind = "submitted"
	EventApproved         EventKind = "approved"
	EventRevoked          EventKind = "revoked"
	EventExecuted         EventKind = "executed"
	EventDeposited        EventKind = "deposited"
	EventOwnerAdded       EventKind = "owner-added"
	EventOwnerRemoved     EventKind = "owner-removed"
	EventThresholdChanged EventKind = "threshold-changed"
)

// Event is an append-only record describing a committed state transition,
// published for external observers (indexers, UIs). Delivery is best-effort
// and events are never part of the consistency model: a failed operation
// publishes nothing.
type Event struct {
	Kind   EventKind
	Wallet quorum.Address
	// Proposal is the id of the proposal the event belongs to, or -1 when
	// the event is not tied to any proposal.
	Proposal int64
	// Actor is the authenticated caller that triggered the transition.
	Actor quorum.Address
	// Owner is set on owner set mutations only.
	Owner quorum.Address
	// Target is the destination of a forwarded call.
	Target    quorum.Address
	Amount    int64
	Payload   []byte
	Threshold uint32
}

// Sink consumes published events.
type Sink interface {
	Publish(Event)
}

// SinkFunc turns a function into a Sink.
type SinkFunc func(Event)

var _ Sink = SinkFunc(nil)

func (f SinkFunc) Publish(ev Event) {
	f(ev)
}

// NopSink drops all events.
type NopSink struct{}

var _ Sink = NopSink{}

func (NopSink) Publish(Event) {}
