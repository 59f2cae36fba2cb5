package controllers

import (
	"context"
	"net/http"
	"time"

	"food-delivery-marketplace/database"
	"food-delivery-marketplace/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func SubmitContact(contacts *database.ContactStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var msg models.ContactMessage
		if err := c.BindJSON(&msg); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&msg); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		msg.Message_id = uuid.NewString()
		msg.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))

		if err := contacts.Insert(ctx, &msg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "message was not saved"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "thanks, we received your message"})
	}
}
