package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/walletgraph/walletgraph/internal/domain"
	"github.com/walletgraph/walletgraph/internal/graph"
	"github.com/walletgraph/walletgraph/internal/session"
)

// Service is the session-facing surface the REST layer depends on
//
//go:generate mockgen -source=handler.go -destination=../../mocks/rest_service.go -package=mocks -mock_names=Service=MockSessionService
type Service interface {
	Start(ctx context.Context, address string) (*session.Session, error)
	Get(sessionID string) (*session.Session, error)
	End(sessionID string) error
	Reset(sessionID string) error
	Projection(sessionID string) (*graph.Projection, error)
	FetchOwnedNFTs(ctx context.Context, sessionID string) (*session.MergeResult, error)
	FetchCollectors(ctx context.Context, sessionID string, contractAddress string, tokenNumber string) (*session.MergeResult, error)
	ExpandContract(ctx context.Context, sessionID string, contractAddress string) (*session.MergeResult, error)
}

// Handler defines the interface for REST API handlers
type Handler interface {
	// StartSession creates a new graph session for a wallet address
	// POST /api/v1/sessions
	StartSession(c *gin.Context)

	// GetGraph returns the current renderable projection of a session
	// GET /api/v1/sessions/:id/graph
	GetGraph(c *gin.Context)

	// FetchOwnedNFTs merges the next page of the primary wallet's NFTs
	// POST /api/v1/sessions/:id/nfts/fetch
	FetchOwnedNFTs(c *gin.Context)

	// FetchCollectors merges the next page of collectors for a token
	// POST /api/v1/sessions/:id/tokens/:contract/:token/collectors/fetch
	FetchCollectors(c *gin.Context)

	// ExpandContract merges the next page of a contract's NFTs
	// POST /api/v1/sessions/:id/contracts/:contract/expand
	ExpandContract(c *gin.Context)

	// ResetSession clears a session's accumulated graph
	// POST /api/v1/sessions/:id/reset
	ResetSession(c *gin.Context)

	// EndSession removes a session
	// DELETE /api/v1/sessions/:id
	EndSession(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	service Service
}

// NewHandler creates a new REST API handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// StartSession creates a new graph session for a wallet address
func (h *handler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request body: "+err.Error())
		return
	}

	sess, err := h.service.Start(c.Request.Context(), req.Address)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidIdentityKey) {
			respondBadRequest(c, "Invalid wallet address")
			return
		}
		respondInternalError(c, err, "Failed to start session")
		return
	}

	c.JSON(http.StatusCreated, NewSessionView(sess))
}

// GetGraph returns the current renderable projection of a session
func (h *handler) GetGraph(c *gin.Context) {
	proj, err := h.service.Projection(c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, proj)
}

// FetchOwnedNFTs merges the next page of the primary wallet's NFTs
func (h *handler) FetchOwnedNFTs(c *gin.Context) {
	result, err := h.service.FetchOwnedNFTs(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondMergeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FetchCollectors merges the next page of collectors for a token
func (h *handler) FetchCollectors(c *gin.Context) {
	result, err := h.service.FetchCollectors(
		c.Request.Context(),
		c.Param("id"),
		c.Param("contract"),
		c.Param("token"),
	)
	if err != nil {
		respondMergeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExpandContract merges the next page of a contract's NFTs
func (h *handler) ExpandContract(c *gin.Context) {
	result, err := h.service.ExpandContract(c.Request.Context(), c.Param("id"), c.Param("contract"))
	if err != nil {
		respondMergeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ResetSession clears a session's accumulated graph
func (h *handler) ResetSession(c *gin.Context) {
	if err := h.service.Reset(c.Param("id")); err != nil {
		respondSessionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// EndSession removes a session
func (h *handler) EndSession(c *gin.Context) {
	if err := h.service.End(c.Param("id")); err != nil {
		respondSessionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "walletgraph-api",
	})
}

// respondSessionError maps session lookup failures
func respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		respondNotFound(c, "Session not found")
		return
	}
	respondInternalError(c, err, "Operation failed")
}

// respondMergeError maps fetch-and-merge failures onto HTTP status codes.
// Rate limits and provider failures clear the operation; the client may
// simply retry, which is safe because merges are idempotent.
func respondMergeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		respondNotFound(c, "Session not found")
	case errors.Is(err, domain.ErrTokenNotTracked):
		respondNotFound(c, "Token not tracked in this session")
	case errors.Is(err, domain.ErrInvalidIdentityKey):
		respondBadRequest(c, "Invalid contract address or token number")
	case errors.Is(err, domain.ErrContractBlocked):
		respondForbidden(c, "Contract is blocked")
	case errors.Is(err, domain.ErrRateLimited):
		respondRateLimited(c, "Upstream provider rate limited, retry later")
	case errors.Is(err, domain.ErrProviderFailure):
		respondProviderError(c, err, "Upstream provider request failed")
	default:
		respondInternalError(c, err, "Operation failed")
	}
}
