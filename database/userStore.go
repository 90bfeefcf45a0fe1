package database

import (
	"context"

	"food-ordering-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserStore struct {
	collection *mongo.Collection
}

func NewUserStore(client *mongo.Client, databaseName string) *UserStore {
	return &UserStore{collection: OpenCollection(client, databaseName, "user")}
}

func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "auth0Id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *UserStore) FindByAuthID(ctx context.Context, auth0ID string) (*models.User, error) {
	var user models.User
	if err := s.collection.FindOne(ctx, bson.M{"auth0Id": auth0ID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	updateObj := bson.D{
		{Key: "name", Value: user.Name},
		{Key: "addressLine1", Value: user.AddressLine1},
		{Key: "city", Value: user.City},
		{Key: "country", Value: user.Country},
	}
	result, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": user.ID},
		bson.D{{Key: "$set", Value: updateObj}},
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
