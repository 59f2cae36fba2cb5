package routes

import (
	"food-delivery-marketplace/controllers"
	"food-delivery-marketplace/middleware"
	"food-delivery-marketplace/models"
	"food-delivery-marketplace/services"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine, svc *services.OrderService, notifier controllers.Notifier) {
	orders := incomingRoutes.Group("/order", middleware.Authentication())

	orders.POST("/create",
		middleware.RequireRole(models.RoleCustomer, models.RoleUser),
		controllers.CreateOrder(svc, notifier))
	orders.GET("/my-orders",
		middleware.RequireRole(models.RoleCustomer, models.RoleUser),
		controllers.MyOrders(svc))
	orders.PATCH("/cancel/:order_id",
		middleware.RequireRole(models.RoleCustomer, models.RoleUser),
		controllers.CancelOrder(svc, notifier))

	orders.GET("/restaurant-orders",
		middleware.RequireRole(models.RoleManager),
		controllers.RestaurantOrders(svc))
	orders.PATCH("/update-status/:order_id",
		middleware.RequireRole(models.RoleManager),
		controllers.UpdateOrderStatus(svc, notifier))
	orders.GET("/notification-count",
		middleware.RequireRole(models.RoleManager),
		controllers.NotificationCount(svc))
}
