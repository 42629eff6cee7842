package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slaviors/simenu/models"
	"github.com/slaviors/simenu/services"
)

// OrderController handles HTTP requests for orders and line items.
type OrderController struct {
	orderService services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(svc services.OrderService) *OrderController {
	return &OrderController{orderService: svc}
}

// PlaceOrderItem handles POST /orders
func (oc *OrderController) PlaceOrderItem(ctx *gin.Context) {
	var req models.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	orderID, svcErr := oc.orderService.PlaceItem(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "order_id": orderID})
}

// GetOrders handles GET /orders?table=N and GET /orders?all=true
func (oc *OrderController) GetOrders(ctx *gin.Context) {
	if ctx.Query("all") == "true" {
		orders, svcErr := oc.orderService.ListAllActive(ctx.Request.Context())
		if svcErr != nil {
			ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
			return
		}
		ctx.JSON(http.StatusOK, orders)
		return
	}

	tableStr := ctx.Query("table")
	if tableStr == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}
	tableNumber, err := strconv.Atoi(tableStr)
	if err != nil || tableNumber <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table number"})
		return
	}

	items, svcErr := oc.orderService.ListForTable(ctx.Request.Context(), tableNumber)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// UpdateItemStatus handles PUT /orders/items/:id/status
func (oc *OrderController) UpdateItemStatus(ctx *gin.Context) {
	itemID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order item ID format"})
		return
	}

	var req models.UpdateItemStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if svcErr := oc.orderService.UpdateItemStatus(ctx.Request.Context(), itemID, req.Status); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated to " + req.Status})
}
