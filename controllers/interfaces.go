package controllers

import (
	"context"

	"food-ordering-backend/database"
	"food-ordering-backend/helpers"
	"food-ordering-backend/models"

	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// Store interfaces are declared on the consumer side; the database package
// satisfies them with Mongo-backed implementations and tests with fakes.

type RestaurantStore interface {
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Restaurant, error)
	Create(ctx context.Context, restaurant *models.Restaurant) error
	Update(ctx context.Context, restaurant *models.Restaurant) error
	CountByCity(ctx context.Context, city string) (int64, error)
	Search(ctx context.Context, params database.SearchParams) (*database.SearchResult, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	MarkPaid(ctx context.Context, id string, amount int64) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByAuthID(ctx context.Context, auth0ID string) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// PaymentClient is the external payment processor: hosted session creation
// on the way out, webhook verification on the way back.
type PaymentClient interface {
	CreateCheckoutSession(ctx context.Context, params helpers.CheckoutSessionParams) (string, error)
	VerifyEvent(payload []byte, sigHeader string) (*helpers.PaymentEvent, error)
}

type ImageUploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// validationMessages flattens a validator error into field-level messages
// for the 400 response body.
func validationMessages(err error) []string {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		messages = append(messages, fieldError.Namespace()+" failed validation on "+fieldError.Tag())
	}
	return messages
}
