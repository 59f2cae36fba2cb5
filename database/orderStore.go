package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-delivery-marketplace/models"
	"food-delivery-marketplace/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderStore is the Mongo implementation of services.OrderStore. The order
// collection is the single source of truth for order status.
type OrderStore struct {
	col *mongo.Collection
}

func NewOrderStore(col *mongo.Collection) *OrderStore {
	return &OrderStore{col: col}
}

func (s *OrderStore) Insert(ctx context.Context, order *models.Order) error {
	_, err := s.col.InsertOne(ctx, order)
	return err
}

func (s *OrderStore) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: order %s", services.ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error) {
	return s.findSorted(ctx, bson.M{"restaurant_id": restaurantID})
}

func (s *OrderStore) FindByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return s.findSorted(ctx, bson.M{"customer_id": customerID})
}

func (s *OrderStore) findSorted(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus persists the new status with a conditional single-document
// write on (order_id, version). A miss on a document that still exists means
// a concurrent writer won the race.
func (s *OrderStore) UpdateStatus(ctx context.Context, orderID string, version int64, status models.OrderStatus) (*models.Order, error) {
	updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))

	filter := bson.M{"order_id": orderID, "version": version}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "status", Value: status},
			{Key: "updated_at", Value: updated_at},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, findErr := s.FindByID(ctx, orderID); findErr != nil {
			return nil, findErr
		}
		return nil, fmt.Errorf("%w: order %s was updated concurrently", services.ErrConflict, orderID)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) CountPending(ctx context.Context, restaurantID string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{
		"restaurant_id": restaurantID,
		"status":        models.OrderPending,
	})
}
