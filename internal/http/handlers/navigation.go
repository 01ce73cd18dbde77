package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/prince-Sf/Corelytics/internal/http/response"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
	"github.com/prince-Sf/Corelytics/internal/services"
	"github.com/prince-Sf/Corelytics/internal/taxonomy"
)

type NavigationHandler struct {
	nav services.NavigationService
	log *logger.Logger
}

func NewNavigationHandler(nav services.NavigationService, log *logger.Logger) *NavigationHandler {
	return &NavigationHandler{nav: nav, log: log.With("handler", "NavigationHandler")}
}

// GET /api/domains
func (h *NavigationHandler) ListDomains(c *gin.Context) {
	items, err := h.nav.ListDomains()
	h.respondItems(c, items, err)
}

// GET /api/domains/:domain/recipients
func (h *NavigationHandler) ListRecipients(c *gin.Context) {
	items, err := h.nav.ListRecipients(c.Param("domain"))
	h.respondItems(c, items, err)
}

// GET /api/domains/:domain/recipients/:recipient/categories
func (h *NavigationHandler) ListCategories(c *gin.Context) {
	items, err := h.nav.ListCategories(c.Param("domain"), c.Param("recipient"))
	h.respondItems(c, items, err)
}

// GET /api/domains/:domain/recipients/:recipient/categories/:category/scenarios
func (h *NavigationHandler) ListScenarios(c *gin.Context) {
	list, err := h.nav.ListScenarios(c.Param("domain"), c.Param("recipient"), c.Param("category"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"items":    list.Items,
		"count":    len(list.Items),
		"required": list.Required,
	})
}

func (h *NavigationHandler) respondItems(c *gin.Context, items []taxonomy.Item, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items, "count": len(items)})
}

func (h *NavigationHandler) fail(c *gin.Context, err error) {
	ae := response.RespondAPIError(c, err)
	if ae.Status >= 500 {
		h.log.Error("navigation failed", "path", c.Request.URL.Path, "error", err)
	}
}
