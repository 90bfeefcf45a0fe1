package database

import (
	"context"

	"food-ordering-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderStore struct {
	collection *mongo.Collection
}

func NewOrderStore(client *mongo.Client, databaseName string) *OrderStore {
	return &OrderStore{collection: OpenCollection(client, databaseName, "order")}
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	_, err := s.collection.InsertOne(ctx, order)
	return err
}

func (s *OrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var order models.Order
	if err := s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"user": userID})
}

func (s *OrderStore) FindByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"restaurant": restaurantID})
}

func (s *OrderStore) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id string, status string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}},
		options.Update().SetUpsert(false),
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPaid records the processor-reported amount and moves the order to the
// paid state. It is a plain $set, so re-applying the same payment event
// converges to the same stored document.
func (s *OrderStore) MarkPaid(ctx context.Context, id string, amount int64) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "totalAmount", Value: amount},
			{Key: "status", Value: models.OrderStatusPaid},
		}}},
		options.Update().SetUpsert(false),
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
