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

type MenuStore struct {
	col *mongo.Collection
}

func NewMenuStore(col *mongo.Collection) *MenuStore {
	return &MenuStore{col: col}
}

func (s *MenuStore) FindByID(ctx context.Context, menuItemID string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.col.FindOne(ctx, bson.M{"menu_item_id": menuItemID}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: menu item %s", services.ErrNotFound, menuItemID)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MenuStore) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"restaurant_id": restaurantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MenuStore) Insert(ctx context.Context, item *models.MenuItem) error {
	_, err := s.col.InsertOne(ctx, item)
	return err
}

// Update applies the non-nil fields of item to the stored record. Catalog
// rows are never hard-deleted once an order references them; delete is a
// flip to unavailable done through this method.
func (s *MenuStore) Update(ctx context.Context, menuItemID string, item *models.MenuItem) (*models.MenuItem, error) {
	var updateObj primitive.D
	if item.Item_name != nil {
		updateObj = append(updateObj, bson.E{Key: "item_name", Value: item.Item_name})
	}
	if item.Price != nil {
		updateObj = append(updateObj, bson.E{Key: "price", Value: item.Price})
	}
	if item.Type != nil {
		updateObj = append(updateObj, bson.E{Key: "type", Value: item.Type})
	}
	if item.Availability != nil {
		updateObj = append(updateObj, bson.E{Key: "availability", Value: item.Availability})
	}
	if item.Images != nil {
		updateObj = append(updateObj, bson.E{Key: "images", Value: item.Images})
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: item.Updated_at})

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.MenuItem
	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"menu_item_id": menuItemID},
		bson.D{{Key: "$set", Value: updateObj}},
		opts,
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: menu item %s", services.ErrNotFound, menuItemID)
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
