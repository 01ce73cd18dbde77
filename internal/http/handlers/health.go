package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prince-Sf/Corelytics/internal/http/response"
	"github.com/prince-Sf/Corelytics/internal/services"
)

type HealthHandler struct {
	nav     services.NavigationService
	version string
}

func NewHealthHandler(nav services.NavigationService, version string) *HealthHandler {
	return &HealthHandler{nav: nav, version: version}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /api/health
func (h *HealthHandler) Status(c *gin.Context) {
	stats := h.nav.Stats()
	response.RespondOK(c, gin.H{
		"status":  "ok",
		"service": "corelytics",
		"version": h.version,
		"taxonomy": gin.H{
			"domains": stats.Domains,
			"nodes":   stats.Nodes(),
		},
	})
}
