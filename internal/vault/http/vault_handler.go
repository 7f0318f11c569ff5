// Package http provides HTTP handlers for the secret vault lifecycle
// operations. Handlers only move opaque envelopes and capability tokens;
// plaintext and passwords never reach this layer.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkseal/linkseal/internal/httputil"
	customValidation "github.com/linkseal/linkseal/internal/validation"
	"github.com/linkseal/linkseal/internal/vault/http/dto"
	vaultUseCase "github.com/linkseal/linkseal/internal/vault/usecase"
)

// destroyTokenHeader optionally carries the destroy token on reveal requests.
const destroyTokenHeader = "X-Destroy-Token"

// VaultHandler handles HTTP requests for secret lifecycle operations.
type VaultHandler struct {
	vaultUseCase vaultUseCase.VaultUseCase
	logger       *slog.Logger
}

// NewVaultHandler creates a new vault handler with required dependencies.
func NewVaultHandler(useCase vaultUseCase.VaultUseCase, logger *slog.Logger) *VaultHandler {
	return &VaultHandler{
		vaultUseCase: useCase,
		logger:       logger,
	}
}

// CreateHandler stores an envelope and returns its capabilities.
// POST /api/create
// Returns 200 with {id, destroyToken}; malformed bodies map to 500 per the
// wire contract.
func (h *VaultHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateSecretRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleMalformedBodyGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	created, err := h.vaultUseCase.Create(c.Request.Context(), req.Envelope(), req.ExpiryType)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCreatedSecret(created))
}

// ViewHandler returns secret metadata so a recipient can decide whether to
// proceed before attempting decryption.
// GET /api/view/:id
// Returns 200 with {ttlMode, expiresAt, hasDestroyToken}; 404 when the id is
// unknown, expired, or destroyed. Never consumes attempt budget.
func (h *VaultHandler) ViewHandler(c *gin.Context) {
	metadata, err := h.vaultUseCase.ViewMetadata(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMetadata(metadata))
}

// RevealHandler returns the stored envelope for local decryption.
// POST /api/reveal/:id - one-time secrets require the X-Destroy-Token header.
// Returns 200 with the envelope; 404 unknown/expired; 403 missing or
// mismatched token on a one-time secret.
func (h *VaultHandler) RevealHandler(c *gin.Context) {
	env, err := h.vaultUseCase.Reveal(
		c.Request.Context(),
		c.Param("id"),
		c.GetHeader(destroyTokenHeader),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEnvelope(env))
}

// AttemptHandler records a decryption attempt against the secret. Callers
// invoke it after every reveal attempt regardless of outcome.
// POST /api/attempt/:id
// Returns 200 with {remaining}; 404 unknown; 410 when the cap is reached and
// the secret has been destroyed.
func (h *VaultHandler) AttemptHandler(c *gin.Context) {
	remaining, err := h.vaultUseCase.RecordAttempt(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.AttemptResponse{Remaining: remaining})
}

// DestroyHandler deletes the secret early, gated by the destroy token.
// DELETE /api/destroy/:id
// Returns 200 with {success:true}; 404 when already gone (benign for a caller
// whose intent was deletion); 403 on token mismatch.
func (h *VaultHandler) DestroyHandler(c *gin.Context) {
	var req dto.DestroySecretRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleMalformedBodyGin(c, err, h.logger)
		return
	}

	if err := h.vaultUseCase.Destroy(c.Request.Context(), c.Param("id"), req.DestroyToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DestroySecretResponse{Success: true})
}
