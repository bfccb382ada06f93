package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/walletgraph/walletgraph/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Session lifecycle
		v1.POST("/sessions", handler.StartSession)
		v1.GET("/sessions/:id/graph", handler.GetGraph)

		// Fetch-and-merge operations (public read/accumulate access)
		v1.POST("/sessions/:id/nfts/fetch", handler.FetchOwnedNFTs)
		v1.POST("/sessions/:id/tokens/:contract/:token/collectors/fetch", handler.FetchCollectors)
		v1.POST("/sessions/:id/contracts/:contract/expand", handler.ExpandContract)

		// Destructive session operations (requires authentication)
		v1.POST("/sessions/:id/reset", middleware.Auth(authCfg), handler.ResetSession)
		v1.DELETE("/sessions/:id", middleware.Auth(authCfg), handler.EndSession)
	}
}
