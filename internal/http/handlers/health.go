package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const serviceName = "akademus-api"

type HealthHandler struct {
	version     string
	environment string
	startedAt   time.Time
}

func NewHealthHandler(version, environment string) *HealthHandler {
	return &HealthHandler{
		version:     version,
		environment: environment,
		startedAt:   time.Now(),
	}
}

// GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"service":     serviceName,
		"version":     h.version,
		"environment": h.environment,
		"uptime":      time.Since(h.startedAt).Seconds(),
	})
}
