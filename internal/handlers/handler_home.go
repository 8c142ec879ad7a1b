package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/bookkeeping_engine/internal/platform/config"
)

// getHealth godoc
// @Summary Show the status of server.
// @Description Reports liveness and which ledger storage the server runs on.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func getHealth(cfg *config.Config) gin.HandlerFunc {
	storage := "postgres"
	if cfg.DatabaseURL == "" {
		storage = "memory"
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": storage})
	}
}
