package middleware

import (
	"context"

	"github.com/promopace/promopace-backend/pkg/types"
)

type contextKey string

const ctxActor contextKey = "actor"

// WithActor injects the attributed actor into the context.
func WithActor(ctx context.Context, actor types.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxActor, actor)
}

// ActorFromContext returns the attributed actor, or false when the request
// carried no valid token.
func ActorFromContext(ctx context.Context) (types.Actor, bool) {
	if ctx == nil {
		return types.Actor{}, false
	}
	actor, ok := ctx.Value(ctxActor).(types.Actor)
	return actor, ok
}
