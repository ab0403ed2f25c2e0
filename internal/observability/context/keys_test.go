package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActorRoundTrip(t *testing.T) {
	ctx := WithActor(context.Background(), "CHEF", "42")
	actorType, actorID := ActorFromContext(ctx)
	assert.Equal(t, "CHEF", actorType)
	assert.Equal(t, "42", actorID)
}

func TestEmptyValuesAreIgnored(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	assert.Empty(t, RequestIDFromContext(ctx))

	ctx = WithClientIP(ctx, "10.0.0.1")
	assert.Equal(t, "10.0.0.1", ClientIPFromContext(ctx))
}
