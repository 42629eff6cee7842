package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slaviors/simenu/services"
)

// MenuController handles HTTP requests for the menu catalog.
type MenuController struct {
	menuService services.MenuService
	validator   *RequestValidator
}

// NewMenuController creates a new MenuController.
func NewMenuController(svc services.MenuService) *MenuController {
	return &MenuController{
		menuService: svc,
		validator:   NewRequestValidator(),
	}
}

// GetMenu handles GET /menu
func (mc *MenuController) GetMenu(ctx *gin.Context) {
	items, svcErr := mc.menuService.ListActiveMenu(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// CreateMenuItem handles POST /menu
func (mc *MenuController) CreateMenuItem(ctx *gin.Context) {
	req, err := mc.validator.ParseMenuItemForm(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	id, svcErr := mc.menuService.CreateMenuItem(ctx.Request.Context(), req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

// UpdateMenuItem handles PUT /menu/:id
func (mc *MenuController) UpdateMenuItem(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID format"})
		return
	}

	req, err := mc.validator.ParseMenuItemForm(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if svcErr := mc.menuService.UpdateMenuItem(ctx.Request.Context(), id, req); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// DeactivateMenuItem handles DELETE /menu/:id
func (mc *MenuController) DeactivateMenuItem(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID format"})
		return
	}

	if svcErr := mc.menuService.DeactivateMenuItem(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
