package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vatledger/internal/service"
)

// SettingsHandler handles tenant display settings.
type SettingsHandler struct {
	settingsService service.TenantSettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.TenantSettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles GET /api/v1/settings
// @Summary      Get display settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} APIResponse{data=domain.TenantSettings}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.Get(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, settings)
}

// Update handles PUT /api/v1/settings
// @Summary      Update display settings
// @Description  Currency symbol and IANA time zone used when rendering reports
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body body UpdateSettingsRequest true "Settings"
// @Success      200 {object} APIResponse{data=domain.TenantSettings}
// @Failure      400 {object} APIResponse
// @Failure      403 {object} APIResponse
// @Security     BearerAuth
// @Router       /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, settings)
}
