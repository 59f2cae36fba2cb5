package models

import "time"

type ContactMessage struct {
	Message_id string    `bson:"message_id" json:"message_id"`
	Name       *string   `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Email      *string   `bson:"email" json:"email" validate:"required,email"`
	Subject    *string   `bson:"subject" json:"subject" validate:"required"`
	Body       *string   `bson:"body" json:"body" validate:"required"`
	Created_at time.Time `bson:"created_at" json:"created_at"`
}
