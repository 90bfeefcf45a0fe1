package database

import (
	"context"
	"strings"

	"food-ordering-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// searchPageSize is the fixed page size for restaurant search results.
const searchPageSize = 10

type RestaurantStore struct {
	collection *mongo.Collection
}

func NewRestaurantStore(client *mongo.Client, databaseName string) *RestaurantStore {
	return &RestaurantStore{collection: OpenCollection(client, databaseName, "restaurant")}
}

// EnsureIndexes creates the unique index backing the at-most-one-restaurant-
// per-owner invariant.
func (s *RestaurantStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *RestaurantStore) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var restaurant models.Restaurant
	if err := s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&restaurant); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (s *RestaurantStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&restaurant); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (s *RestaurantStore) Create(ctx context.Context, restaurant *models.Restaurant) error {
	if _, err := s.collection.InsertOne(ctx, restaurant); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *RestaurantStore) Update(ctx context.Context, restaurant *models.Restaurant) error {
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": restaurant.ID}, restaurant)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RestaurantStore) CountByCity(ctx context.Context, city string) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{"city": cityPattern(city)})
}

type SearchParams struct {
	City        string
	SearchQuery string
	Cuisines    []string
	SortOption  string
	Page        int
}

type SearchResult struct {
	Restaurants []models.Restaurant
	Total       int64
}

func (s *RestaurantStore) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	filter := searchFilter(params)

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sortOption := params.SortOption
	if sortOption == "" {
		sortOption = "lastUpdated"
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortOption, Value: 1}}).
		SetSkip(int64((page - 1) * searchPageSize)).
		SetLimit(searchPageSize)

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	restaurants := []models.Restaurant{}
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	return &SearchResult{Restaurants: restaurants, Total: total}, nil
}

// searchFilter builds the Mongo filter: case-insensitive city match ANDed
// with an all-cuisines match, ORed internally between restaurant name and
// cuisine tags when a free-text query is present.
func searchFilter(params SearchParams) bson.M {
	filter := bson.M{"city": cityPattern(params.City)}

	if len(params.Cuisines) > 0 {
		patterns := make([]primitive.Regex, 0, len(params.Cuisines))
		for _, cuisine := range params.Cuisines {
			patterns = append(patterns, primitive.Regex{Pattern: cuisine, Options: "i"})
		}
		filter["cuisines"] = bson.M{"$all": patterns}
	}

	if query := strings.TrimSpace(params.SearchQuery); query != "" {
		pattern := primitive.Regex{Pattern: query, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"restaurantName": pattern},
			bson.M{"cuisines": bson.M{"$in": bson.A{pattern}}},
		}
	}
	return filter
}

func cityPattern(city string) primitive.Regex {
	return primitive.Regex{Pattern: city, Options: "i"}
}
