package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vatledger/internal/service"
)

// MenuItemHandler handles menu catalog endpoints.
type MenuItemHandler struct {
	menuItemService service.MenuItemService
}

// NewMenuItemHandler creates a new MenuItemHandler.
func NewMenuItemHandler(menuItemService service.MenuItemService) *MenuItemHandler {
	return &MenuItemHandler{menuItemService: menuItemService}
}

// Create handles POST /api/v1/menu-items
// @Summary      Create menu item
// @Description  Adds an item to the catalog. A VAT rate must be chosen explicitly; mixed items need components that add up to the price.
// @Tags         menu-items
// @Accept       json
// @Produce      json
// @Param        body body CreateMenuItemRequest true "Menu item"
// @Success      201 {object} APIResponse{data=domain.MenuItem}
// @Failure      400 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Security     BearerAuth
// @Router       /menu-items [post]
func (h *MenuItemHandler) Create(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	item, err := h.menuItemService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, item)
}

// List handles GET /api/v1/menu-items
// @Summary      List menu items
// @Tags         menu-items
// @Produce      json
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.MenuItem,meta=PagMeta}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /menu-items [get]
func (h *MenuItemHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	items, total, err := h.menuItemService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/menu-items/:id
// @Summary      Get menu item
// @Tags         menu-items
// @Produce      json
// @Param        id path string true "Menu item ID"
// @Success      200 {object} APIResponse{data=domain.MenuItem}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /menu-items/{id} [get]
func (h *MenuItemHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.menuItemService.GetByID(c.Request.Context(), tenantID, itemID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Update handles PUT /api/v1/menu-items/:id
// @Summary      Update menu item
// @Description  Partial update; the result must still pass the VAT checks
// @Tags         menu-items
// @Accept       json
// @Produce      json
// @Param        id path string true "Menu item ID"
// @Param        body body UpdateMenuItemRequest true "Fields to change"
// @Success      200 {object} APIResponse{data=domain.MenuItem}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Security     BearerAuth
// @Router       /menu-items/{id} [put]
func (h *MenuItemHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	item, err := h.menuItemService.Update(c.Request.Context(), tenantID, itemID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Delete handles DELETE /api/v1/menu-items/:id
// @Summary      Delete menu item
// @Description  Past order lines keep their name and price but lose the item link
// @Tags         menu-items
// @Produce      json
// @Param        id path string true "Menu item ID"
// @Success      200 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /menu-items/{id} [delete]
func (h *MenuItemHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.menuItemService.Delete(c.Request.Context(), tenantID, itemID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "menu item deleted"})
}
