package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("linkseal")
	require.NoError(t, err)
	require.NotNil(t, provider)
	defer func() {
		require.NoError(t, provider.Shutdown(context.Background()))
	}()

	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())
}

func TestProviderHandlerServesMetrics(t *testing.T) {
	provider, err := NewProvider("linkseal")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, provider.Shutdown(context.Background()))
	}()

	business, err := NewBusinessMetrics(provider.MeterProvider(), "linkseal")
	require.NoError(t, err)

	ctx := context.Background()
	business.RecordOperation(ctx, "vault", "secret_create", "success")
	business.RecordDuration(ctx, "vault", "secret_create", 5*time.Millisecond, "success")

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "linkseal_operations_total")
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "/api/view/:id", sanitizePath("/api/view/:id"))
	assert.Equal(t, "unmatched", sanitizePath(""))
}
