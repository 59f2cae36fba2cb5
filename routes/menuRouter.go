package routes

import (
	"food-delivery-marketplace/controllers"
	"food-delivery-marketplace/database"
	"food-delivery-marketplace/middleware"
	"food-delivery-marketplace/models"

	"github.com/gin-gonic/gin"
)

func MenuRoutes(incomingRoutes *gin.Engine, menu *database.MenuStore) {
	// Reads are public so customers can browse without an account.
	incomingRoutes.GET("/menu/restaurant/:restaurant_id", controllers.RestaurantMenu(menu))

	authed := incomingRoutes.Group("/menu", middleware.Authentication())
	authed.GET("/:menu_item_id", controllers.GetMenuItem(menu))

	manager := authed.Group("", middleware.RequireRole(models.RoleManager))
	manager.POST("", controllers.CreateMenuItem(menu))
	manager.PATCH("/:menu_item_id", controllers.UpdateMenuItem(menu))
	manager.DELETE("/:menu_item_id", controllers.DeleteMenuItem(menu))
}
