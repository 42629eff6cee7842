package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/slaviors/simenu/controllers"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, mc *controllers.MenuController, oc *controllers.OrderController, bc *controllers.BillController) {
	menu := r.Group("/menu")
	menu.GET("", mc.GetMenu)
	menu.POST("", mc.CreateMenuItem)
	menu.PUT("/:id", mc.UpdateMenuItem)
	menu.DELETE("/:id", mc.DeactivateMenuItem)

	orders := r.Group("/orders")
	orders.POST("", oc.PlaceOrderItem)
	orders.GET("", oc.GetOrders)
	orders.PUT("/items/:id/status", oc.UpdateItemStatus)

	bills := r.Group("/bills")
	bills.POST("", bc.RequestBill)
	bills.GET("", bc.GetBillRequests)
	bills.PUT("/:id", bc.ProcessBill)
}
