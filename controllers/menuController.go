package controllers

import (
	"context"
	"net/http"
	"time"

	"food-delivery-marketplace/database"
	"food-delivery-marketplace/models"
	"food-delivery-marketplace/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RestaurantMenu lists a restaurant's catalog; public, customers browse it.
func RestaurantMenu(menu *database.MenuStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		items, err := menu.FindByRestaurant(ctx, c.Param("restaurant_id"))
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func GetMenuItem(menu *database.MenuStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		item, err := menu.FindByID(ctx, c.Param("menu_item_id"))
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// CreateMenuItem adds a catalog entry owned by the authenticated restaurant.
func CreateMenuItem(menu *database.MenuStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var item models.MenuItem
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&item); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		item.Restaurant_id = c.GetString("uid")
		item.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		item.Updated_at = item.Created_at
		item.ID = primitive.NewObjectID()
		item.Menu_item_id = item.ID.Hex()

		if err := menu.Insert(ctx, &item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item was not created"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// UpdateMenuItem edits a catalog entry. Owner-only; edits never touch the
// price/name snapshots on existing orders.
func UpdateMenuItem(menu *database.MenuStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		menuItemId := c.Param("menu_item_id")
		existing, err := menu.FindByID(ctx, menuItemId)
		if err != nil {
			errorResponse(c, err)
			return
		}
		if existing.Restaurant_id != c.GetString("uid") && c.GetString("role") != models.RoleAdmin {
			errorResponse(c, services.ErrForbidden)
			return
		}

		var item models.MenuItem
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if item.Availability != nil &&
			*item.Availability != models.MenuItemAvailable && *item.Availability != models.MenuItemUnavailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "availability must be available or unavailable"})
			return
		}
		item.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))

		updated, err := menu.Update(ctx, menuItemId, &item)
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteMenuItem is a soft delete: the row flips to unavailable so order
// snapshots keep resolving. Catalog rows are never hard-deleted.
func DeleteMenuItem(menu *database.MenuStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		menuItemId := c.Param("menu_item_id")
		existing, err := menu.FindByID(ctx, menuItemId)
		if err != nil {
			errorResponse(c, err)
			return
		}
		if existing.Restaurant_id != c.GetString("uid") && c.GetString("role") != models.RoleAdmin {
			errorResponse(c, services.ErrForbidden)
			return
		}

		unavailable := models.MenuItemUnavailable
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updated, err := menu.Update(ctx, menuItemId, &models.MenuItem{
			Availability: &unavailable,
			Updated_at:   updated_at,
		})
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
