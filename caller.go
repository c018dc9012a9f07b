package quorum

import "context"

// ExternalCaller performs the forwarded call of an approved proposal. It is
// the boundary to whatever lives outside of a wallet: a token transfer, a
// contract invocation, another wallet.
//
// The call must be synchronous. A nil return commits the proposal execution,
// any error rolls it back entirely.
type ExternalCaller interface {
	Call(ctx context.Context, target Address, amount int64, payload []byte) error
}

// ExternalCallerFunc turns a function into an ExternalCaller.
type ExternalCallerFunc func(ctx context.Context, target Address, amount int64, payload []byte) error

var _ ExternalCaller = ExternalCallerFunc(nil)

func (f ExternalCallerFunc) Call(ctx context.Context, target Address, amount int64, payload []byte) error {
	return f(ctx, target, amount, payload)
}
