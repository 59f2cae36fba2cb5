package controllers

import (
	"context"
	"net/http"
	"time"

	"food-delivery-marketplace/models"
	"food-delivery-marketplace/services"
	"food-delivery-marketplace/ws"

	"github.com/gin-gonic/gin"
)

// Notifier is the room-broadcast seam the order handlers push through. The
// websocket hub satisfies it in production; tests hand in a recorder.
type Notifier interface {
	Emit(room string, event string, payload interface{})
}

type statusUpdatePayload struct {
	Order_id string             `json:"order_id"`
	Status   models.OrderStatus `json:"status"`
}

// CreateOrder persists the order first, then signals the restaurant's room.
// Broadcasting stays out of the service so domain logic carries no transport
// concerns.
func CreateOrder(svc *services.OrderService, notifier Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var in services.CreateOrderInput
		if err := c.BindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "validation"})
			return
		}

		order, err := svc.CreateOrder(ctx, c.GetString("uid"), in)
		if err != nil {
			errorResponse(c, err)
			return
		}

		notifier.Emit(order.Restaurant_id, ws.EventNewOrder, order)
		c.JSON(http.StatusCreated, order)
	}
}

// RestaurantOrders lists the authenticated restaurant's orders, newest first.
func RestaurantOrders(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, err := svc.RestaurantOrders(ctx, c.GetString("uid"))
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// MyOrders is the customer-side order history.
func MyOrders(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, err := svc.CustomerOrders(ctx, c.GetString("uid"))
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// UpdateOrderStatus applies a restaurant-side transition. The new status is
// persisted before the rooms hear about it, so a re-fetch triggered by the
// push always observes a state at least as new as the pushed one.
func UpdateOrderStatus(svc *services.OrderService, notifier Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var body struct {
			Status models.OrderStatus `json:"status"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "validation"})
			return
		}

		actor := services.Actor{UserID: c.GetString("uid"), Role: c.GetString("role")}
		order, err := svc.UpdateStatus(ctx, c.Param("order_id"), body.Status, actor)
		if err != nil {
			errorResponse(c, err)
			return
		}

		broadcastStatus(notifier, order)
		c.JSON(http.StatusOK, order)
	}
}

// CancelOrder is the customer's cancellation path; it runs through the same
// transition machinery as the restaurant endpoint.
func CancelOrder(svc *services.OrderService, notifier Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := services.Actor{UserID: c.GetString("uid"), Role: c.GetString("role")}
		order, err := svc.UpdateStatus(ctx, c.Param("order_id"), models.OrderCancelled, actor)
		if err != nil {
			errorResponse(c, err)
			return
		}

		broadcastStatus(notifier, order)
		c.JSON(http.StatusOK, order)
	}
}

func broadcastStatus(notifier Notifier, order *models.Order) {
	payload := statusUpdatePayload{Order_id: order.Order_id, Status: order.Status}
	notifier.Emit(order.Customer_id, ws.EventOrderStatusUpdated, payload)
	notifier.Emit(order.Restaurant_id, ws.EventOrderStatusUpdated, payload)
}

// NotificationCount returns the pending-order badge for the restaurant.
func NotificationCount(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		count, err := svc.PendingCount(ctx, c.GetString("uid"))
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}
