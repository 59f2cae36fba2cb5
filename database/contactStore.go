package database

import (
	"context"

	"food-delivery-marketplace/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ContactStore struct {
	col *mongo.Collection
}

func NewContactStore(col *mongo.Collection) *ContactStore {
	return &ContactStore{col: col}
}

func (s *ContactStore) Insert(ctx context.Context, msg *models.ContactMessage) error {
	_, err := s.col.InsertOne(ctx, msg)
	return err
}
