package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slaviors/simenu/models"
	"github.com/slaviors/simenu/services"
)

// BillController handles HTTP requests for the bill request ledger.
type BillController struct {
	billService services.BillService
}

// NewBillController creates a new BillController.
func NewBillController(svc services.BillService) *BillController {
	return &BillController{billService: svc}
}

// RequestBill handles POST /bills
func (bc *BillController) RequestBill(ctx *gin.Context) {
	var req models.RequestBillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	billID, svcErr := bc.billService.RequestBill(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "id": billID})
}

// GetBillRequests handles GET /bills
func (bc *BillController) GetBillRequests(ctx *gin.Context) {
	bills, svcErr := bc.billService.ListBillRequests(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	ctx.JSON(http.StatusOK, bills)
}

// ProcessBill handles PUT /bills/:id
func (bc *BillController) ProcessBill(ctx *gin.Context) {
	billID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill request ID format"})
		return
	}

	var req models.ProcessBillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if svcErr := bc.billService.ProcessBill(ctx.Request.Context(), billID, req.Status); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Bill status updated to " + req.Status})
}
