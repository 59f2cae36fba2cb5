package routes

import (
	"food-delivery-marketplace/controllers"
	"food-delivery-marketplace/database"
	"food-delivery-marketplace/middleware"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine, users *database.UserStore) {
	incomingRoutes.POST("/users/signup", controllers.SignUp(users))
	incomingRoutes.POST("/users/login", controllers.Login(users))

	authed := incomingRoutes.Group("/users", middleware.Authentication())
	authed.GET("/:user_id", controllers.GetUser(users))
	authed.PATCH("/:user_id", controllers.UpdateUser(users))
}
