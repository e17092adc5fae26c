package actorcontext

import (
	"context"
	"strings"
)

// ActorContextKey is the request context key for the acting staff identity.
type ActorContextKey struct{}

// WithActor stores the acting staff identifier in the context.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ActorContextKey{}, strings.TrimSpace(actor))
}

// ActorFromContext returns the acting staff identifier from context, if set.
func ActorFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value := ctx.Value(ActorContextKey{})
	if typed, ok := value.(string); ok && typed != "" {
		return typed, true
	}
	return "", false
}

// ActorOrDefault returns the acting staff identifier or "system" when absent.
func ActorOrDefault(ctx context.Context) string {
	if actor, ok := ActorFromContext(ctx); ok {
		return actor
	}
	return "system"
}
