package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.1, ClampRatio(0))
	assert.Equal(t, 1.0, ClampRatio(3))
	assert.Equal(t, 0.5, ClampRatio(0.5))
}

func TestSafeAttributesDropsPersonalData(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/api/ratings"),
		attribute.String("user.email", "awa@example.com"),
		attribute.String("auth.token", "abc"),
	)
	require.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("http.route"), attrs[0].Key)
}

func TestSafeErrorKeepsOnlyType(t *testing.T) {
	assert.Nil(t, SafeError(nil))
	assert.Equal(t, "*errors.errorString", SafeError(errors.New("password=hunter2")).Error())
}

func TestDisabledProviderIsNil(t *testing.T) {
	provider, err := NewProvider(nil, Config{Enabled: false}, nil)
	require.NoError(t, err)
	assert.Nil(t, provider)
}

func TestWrapHTTPClientPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := WrapHTTPClient(nil)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
