package handlers

import (
	"net/http"

	"laundry_app/internal/services"

	"github.com/gin-gonic/gin"
)

// ContentHandler serves the public read-only surface the order form needs:
// site settings and the active catalog.
type ContentHandler struct {
	settingsService services.SettingsService
	catalogService  services.CatalogService
}

func NewContentHandler(settingsService services.SettingsService, catalogService services.CatalogService) *ContentHandler {
	return &ContentHandler{
		settingsService: settingsService,
		catalogService:  catalogService,
	}
}

func (h *ContentHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h *ContentHandler) ListActiveServices(c *gin.Context) {
	items, err := h.catalogService.GetActiveServices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": items})
}
