package routes

import (
	"food-delivery-marketplace/controllers"
	"food-delivery-marketplace/database"

	"github.com/gin-gonic/gin"
)

func ContactRoutes(incomingRoutes *gin.Engine, contacts *database.ContactStore) {
	incomingRoutes.POST("/contact", controllers.SubmitContact(contacts))
}
