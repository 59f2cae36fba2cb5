package database

import (
	"context"
	"errors"
	"fmt"

	"food-delivery-marketplace/models"
	"food-delivery-marketplace/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(col *mongo.Collection) *UserStore {
	return &UserStore{col: col}
}

func (s *UserStore) FindByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user %s", services.ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: no account for that email", services.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) EmailOrPhoneExists(ctx context.Context, email, phone string) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"phone": phone},
	}})
	return count > 0, err
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.col.InsertOne(ctx, user)
	return err
}

func (s *UserStore) Update(ctx context.Context, userID string, updateObj primitive.D) error {
	result, err := s.col.UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.D{{Key: "$set", Value: updateObj}},
		options.Update().SetUpsert(false),
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: user %s", services.ErrNotFound, userID)
	}
	return nil
}
