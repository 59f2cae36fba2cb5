package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out-for-delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// OrderItem is a snapshot of the menu item at order-creation time. Item_name
// and Price are copied from the catalog record so the invoice stays immutable
// when the restaurant later edits its menu.
type OrderItem struct {
	Menu_item_id string  `bson:"menu_item_id" json:"menu_item_id" validate:"required"`
	Item_name    string  `bson:"item_name" json:"item_name"`
	Quantity     int64   `bson:"quantity" json:"quantity" validate:"required,min=1"`
	Price        float64 `bson:"price" json:"price"`
}

type Order struct {
	ID               primitive.ObjectID `bson:"_id"`
	Order_id         string             `bson:"order_id" json:"order_id"`
	Customer_id      string             `bson:"customer_id" json:"customer_id"`
	Restaurant_id    string             `bson:"restaurant_id" json:"restaurant_id"`
	Items            []OrderItem        `bson:"items" json:"items"`
	Total_amount     float64            `bson:"total_amount" json:"total_amount"`
	Status           OrderStatus        `bson:"status" json:"status"`
	Payment_status   PaymentStatus      `bson:"payment_status" json:"payment_status"`
	Delivery_address string             `bson:"delivery_address" json:"delivery_address"`
	Contact_number   string             `bson:"contact_number" json:"contact_number"`
	Version          int64              `bson:"version" json:"version"`
	Created_at       time.Time          `bson:"created_at" json:"created_at"`
	Updated_at       time.Time          `bson:"updated_at" json:"updated_at"`
}

// OrderWithCustomer is the restaurant-dashboard row: the order plus the
// customer identity fields resolved for display.
type OrderWithCustomer struct {
	Order          `bson:",inline"`
	Customer_name  *string `bson:"customer_name,omitempty" json:"customer_name,omitempty"`
	Customer_phone *string `bson:"customer_phone,omitempty" json:"customer_phone,omitempty"`
}
