package quorum

import (
	"context"
)

type contextKey int // local to the quorum package

const (
	contextKeyCaller contextKey = iota
)

// WithCaller stores the authenticated caller address in the context. Every
// entry point of the system is expected to set it exactly once, before
// handing the context down the stack.
func WithCaller(ctx context.Context, addr Address) context.Context {
	return context.WithValue(ctx, contextKeyCaller, addr)
}

// Caller returns the address previously set on this context, or nil when the
// context carries no authentication.
func Caller(ctx context.Context) Address {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyCaller).(Address)
	return val
}
