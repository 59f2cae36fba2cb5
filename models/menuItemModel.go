package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MenuItemAvailable   = "available"
	MenuItemUnavailable = "unavailable"
)

type MenuItem struct {
	ID            primitive.ObjectID `bson:"_id"`
	Item_name     *string            `bson:"item_name" json:"item_name" validate:"required,min=2,max=100"`
	Price         *float64           `bson:"price" json:"price" validate:"required,min=0"`
	Type          *string            `bson:"type" json:"type" validate:"required"`
	Availability  *string            `bson:"availability" json:"availability" validate:"required,eq=available|eq=unavailable"`
	Images        []string           `bson:"images" json:"images"`
	Restaurant_id string             `bson:"restaurant_id" json:"restaurant_id"`
	Created_at    time.Time          `bson:"created_at" json:"created_at"`
	Updated_at    time.Time          `bson:"updated_at" json:"updated_at"`
	Menu_item_id  string             `bson:"menu_item_id" json:"menu_item_id"`
}
