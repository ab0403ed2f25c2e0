package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsIdentifiers(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("chef_id", "123"),
		attribute.String("result", "validated"),
		attribute.String("formule", "COMPLET"),
	)
	require.Len(t, attrs, 2)
	for _, attr := range attrs {
		assert.NotEqual(t, attribute.Key("chef_id"), attr.Key)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordActivation(ctx, "validated")
	m.RecordOrdersGenerated(ctx, "MIDI", 7)
	m.RecordRatingSubmitted(ctx, "ok")
	m.ObserveRatingRecompute(ctx, time.Millisecond)
	m.RecordRateLimitDenied(ctx, "/api/auth/login", "token_bucket")
}

func TestNoopInstruments(t *testing.T) {
	m := NewNoop()
	require.NotNil(t, m)
	m.RecordOrdersGenerated(context.Background(), "COMPLET", 14)
}
