package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkseal/linkseal/internal/cipher"
	"github.com/linkseal/linkseal/internal/httputil"
	"github.com/linkseal/linkseal/internal/vault/domain"
	"github.com/linkseal/linkseal/internal/vault/http/dto"
	"github.com/linkseal/linkseal/internal/vault/repository"
	"github.com/linkseal/linkseal/internal/vault/service"
	vaultUseCase "github.com/linkseal/linkseal/internal/vault/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestRouter wires a handler against a real in-memory vault. The store is
// returned alongside the router so tests can seed records directly.
func newTestRouter(
	t *testing.T,
	cfg vaultUseCase.Config,
) (*gin.Engine, *repository.MemorySecretRepository) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repository.NewMemorySecretRepository(0, logger)
	t.Cleanup(repo.Close)

	useCase := vaultUseCase.NewVaultUseCase(cfg, repo, service.NewCredentialService())
	handler := NewVaultHandler(useCase, logger)

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/create", handler.CreateHandler)
		api.GET("/view/:id", handler.ViewHandler)
		api.POST("/reveal/:id", handler.RevealHandler)
		api.POST("/attempt/:id", handler.AttemptHandler)
		api.DELETE("/destroy/:id", handler.DestroyHandler)
	}
	return router, repo
}

func defaultHandlerConfig() vaultUseCase.Config {
	return vaultUseCase.Config{
		AttemptCap:       30,
		OneTimeRetention: 720 * time.Hour,
	}
}

func createBody(expiryType string) map[string]string {
	return map[string]string{
		"ciphertext": base64.StdEncoding.EncodeToString([]byte("ciphertext-with-tag")),
		"iv":         base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{1}, 12)),
		"salt":       base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{2}, 16)),
		"expiryType": expiryType,
	}
}

func doJSON(
	router *gin.Engine,
	method, path string,
	body any,
	headers map[string]string,
) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// createSecret stores a secret and returns its capabilities.
func createSecret(t *testing.T, router *gin.Engine, expiryType string) dto.CreateSecretResponse {
	t.Helper()

	w := doJSON(router, http.MethodPost, "/api/create", createBody(expiryType), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var created dto.CreateSecretResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.DestroyToken)
	return created
}

func TestCreateHandler(t *testing.T) {
	router, _ := newTestRouter(t, defaultHandlerConfig())

	created := createSecret(t, router, "24h")
	assert.NotEqual(t, created.ID, created.DestroyToken)
}

func TestCreateHandlerMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t, defaultHandlerConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/create", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateHandlerValidation(t *testing.T) {
	router, _ := newTestRouter(t, defaultHandlerConfig())

	body := createBody("24h")
	body["ciphertext"] = "not base64!!!"
	w := doJSON(router, http.MethodPost, "/api/create", body, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateHandlerUnrecognizedExpiryHint(t *testing.T) {
	router, _ := newTestRouter(t, defaultHandlerConfig())

	// Unknown hints are legal and fall back to the 24h policy.
	created := createSecret(t, router, "1h")

	w := doJSON(router, http.MethodGet, "/api/view/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var metadata dto.MetadataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &metadata))
	assert.Equal(t, "24h", metadata.TTLMode)
	assert.InDelta(t, time.Now().Add(24*time.Hour).Unix(), metadata.ExpiresAt, 5)
}

func TestViewHandler(t *testing.T) {
	router, _ := newTestRouter(t, defaultHandlerConfig())
	created := createSecret(t, router, "7d")

	w := doJSON(router, http.MethodGet, "/api/view/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var metadata dto.MetadataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &metadata))
	assert.Equal(t, "7d", metadata.TTLMode)
	assert.True(t, metadata.HasDestroyToken)
	assert.InDelta(t, time.Now().Add(7*24*time.Hour).Unix(), metadata.ExpiresAt, 5)
}

func TestViewHandlerNotFound(t *testing.T) {
	router, _ := newTestRouter(t, defaultHandlerConfig())

	w := doJSON(router, http.MethodGet, "/api/view/unknown-id", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestViewHandlerExpiredSecret(t *testing.T) {
	router, repo := newTestRouter(t, defaultHandlerConfig())

	record := &domain.SecretRecord{
		ID:       uuid.Must(uuid.NewV7()),
		PublicID: "expired-public-id",
		Envelope: cipher.Envelope{
			Ciphertext: createBody("")["ciphertext"],
			IV:         createBody("")["iv"],
			Salt:       createBody("")["salt"],
		},
		Mode:      domain.Expiry24h,
		CreatedAt: time.Now().Add(-25 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Insert(context.Background(), record))

	// The access that observes the expiry reports it as the reason.
	w := doJSON(router, http.MethodGet, "/api/view/"+record.PublicID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "expired", resp.Error)

	// That access evicted the record; from here the id never existed.
	w = doJSON(router, http.MethodGet, "/api/view/"+record.PublicID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Error)
}

func TestRevealHandlerTTLSecret(t *testing.T) {
	router, _ := newTestRouter(t, defaultHandlerConfig())
	created := createSecret(t, router, "24h")

	w := doJSON(router, http.MethodPost, "/api/reveal/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env dto.RevealSecretResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, createBody("")["ciphertext"], env.Ciphertext)
	assert.Equal(t, createBody("")["iv"], env.IV)
	assert.Equal(t, createBody("")["salt"], env.Salt)
}

func TestRevealHandlerOneTimeSecret(t *testing.T) {
	router, _ := newTestRouter(t, defaultHandlerConfig())
	created := createSecret(t, router, "one-time")

	t.Run("missing token", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/reveal/"+created.ID, nil, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/reveal/"+created.ID, nil,
			map[string]string{"X-Destroy-Token": "wrong"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("correct token", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/reveal/"+created.ID, nil,
			map[string]string{"X-Destroy-Token": created.DestroyToken})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAttemptHandler(t *testing.T) {
	router, _ := newTestRouter(t, vaultUseCase.Config{AttemptCap: 3, OneTimeRetention: time.Hour})
	created := createSecret(t, router, "24h")

	for want := 2; want >= 1; want-- {
		w := doJSON(router, http.MethodPost, "/api/attempt/"+created.ID, nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.AttemptResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, want, resp.Remaining)
	}

	// Cap reached: 410 and the record is gone.
	w := doJSON(router, http.MethodPost, "/api/attempt/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusGone, w.Code)

	w = doJSON(router, http.MethodGet, "/api/view/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttemptHandlerNotFound(t *testing.T) {
	router, _ := newTestRouter(t, defaultHandlerConfig())

	w := doJSON(router, http.MethodPost, "/api/attempt/unknown-id", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDestroyHandler(t *testing.T) {
	router, _ := newTestRouter(t, defaultHandlerConfig())
	created := createSecret(t, router, "24h")

	t.Run("absent token fails like a wrong one", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/api/destroy/"+created.ID,
			map[string]string{}, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(router, http.MethodGet, "/api/view/"+created.ID, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong token leaves the record intact", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/api/destroy/"+created.ID,
			map[string]string{"destroyToken": "wrong"}, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(router, http.MethodGet, "/api/view/"+created.ID, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("correct token destroys", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/api/destroy/"+created.ID,
			map[string]string{"destroyToken": created.DestroyToken}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.DestroySecretResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		w = doJSON(router, http.MethodGet, "/api/view/"+created.ID, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("already gone reports not found", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/api/destroy/"+created.ID,
			map[string]string{"destroyToken": created.DestroyToken}, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDestroyHandlerUnknownID(t *testing.T) {
	router, _ := newTestRouter(t, defaultHandlerConfig())

	w := doJSON(router, http.MethodDelete, "/api/destroy/unknown-id",
		map[string]string{"destroyToken": "anything"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResponsesAreJSON(t *testing.T) {
	router, _ := newTestRouter(t, defaultHandlerConfig())

	paths := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/api/create", createBody("24h")},
		{http.MethodGet, "/api/view/missing", nil},
		{http.MethodPost, "/api/reveal/missing", nil},
		{http.MethodPost, "/api/attempt/missing", nil},
		{http.MethodDelete, "/api/destroy/missing", map[string]string{"destroyToken": "x"}},
	}

	for _, p := range paths {
		t.Run(fmt.Sprintf("%s %s", p.method, p.path), func(t *testing.T) {
			w := doJSON(router, p.method, p.path, p.body, nil)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		})
	}
}
