// Package identity carries the authenticated caller on a request context.
package identity

import "context"

// Caller is the principal a request runs on behalf of
type Caller struct {
	Subject string
}

// Anonymous is returned by FromContext when no caller was attached
var Anonymous = Caller{Subject: "anonymous"}

type callerKey struct{}

// WithCaller returns a copy of ctx carrying caller
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// FromContext returns the caller attached to ctx, or Anonymous
func FromContext(ctx context.Context) Caller {
	if caller, ok := ctx.Value(callerKey{}).(Caller); ok {
		return caller
	}
	return Anonymous
}
