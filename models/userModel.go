package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// A manager account is the restaurant itself (one-to-one), so the restaurant
// id carried on menu items, orders and pub/sub rooms is the manager's user id.
const (
	RoleCustomer = "customer"
	RoleUser     = "user"
	RoleManager  = "manager"
	RolePartner  = "partner"
	RoleAdmin    = "admin"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      *string            `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Password  *string            `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Email     *string            `bson:"email" json:"email" validate:"email,required"`
	Avatar    *string            `bson:"avatar" json:"avatar"`
	Phone     *string            `bson:"phone" json:"phone" validate:"required"`
	Address   *string            `bson:"address" json:"address"`
	User_role *string            `bson:"user_role" json:"user_role" validate:"required,eq=customer|eq=user|eq=manager|eq=partner|eq=admin"`

	Token         *string   `bson:"token" json:"token,omitempty"`
	Refresh_Token *string   `bson:"refresh_token" json:"refresh_token,omitempty"`
	Created_at    time.Time `bson:"created_at" json:"created_at"`
	Updated_at    time.Time `bson:"updated_at" json:"updated_at"`
	User_id       string    `bson:"user_id" json:"user_id"`
}
