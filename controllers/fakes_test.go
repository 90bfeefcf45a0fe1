package controllers

import (
	"context"
	"strings"

	"food-ordering-backend/database"
	"food-ordering-backend/helpers"
	"food-ordering-backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRestaurantStore struct {
	byID         map[string]*models.Restaurant
	cityCounts   map[string]int64
	searchResult *database.SearchResult
	createErr    error
}

func newFakeRestaurantStore() *fakeRestaurantStore {
	return &fakeRestaurantStore{
		byID:       map[string]*models.Restaurant{},
		cityCounts: map[string]int64{},
	}
}

func (s *fakeRestaurantStore) add(restaurant *models.Restaurant) {
	s.byID[restaurant.ID.Hex()] = restaurant
}

func (s *fakeRestaurantStore) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	if restaurant, ok := s.byID[id]; ok {
		return restaurant, nil
	}
	return nil, database.ErrNotFound
}

func (s *fakeRestaurantStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Restaurant, error) {
	for _, restaurant := range s.byID {
		if restaurant.User == userID {
			return restaurant, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeRestaurantStore) Create(ctx context.Context, restaurant *models.Restaurant) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, err := s.FindByUser(ctx, restaurant.User); err == nil {
		return database.ErrAlreadyExists
	}
	s.add(restaurant)
	return nil
}

func (s *fakeRestaurantStore) Update(ctx context.Context, restaurant *models.Restaurant) error {
	if _, ok := s.byID[restaurant.ID.Hex()]; !ok {
		return database.ErrNotFound
	}
	s.add(restaurant)
	return nil
}

func (s *fakeRestaurantStore) CountByCity(ctx context.Context, city string) (int64, error) {
	return s.cityCounts[strings.ToLower(city)], nil
}

func (s *fakeRestaurantStore) Search(ctx context.Context, params database.SearchParams) (*database.SearchResult, error) {
	if s.searchResult != nil {
		return s.searchResult, nil
	}
	return &database.SearchResult{Restaurants: []models.Restaurant{}}, nil
}

type fakeOrderStore struct {
	orders        map[string]*models.Order
	markPaidCalls int
	createErr     error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[string]*models.Order{}}
}

func (s *fakeOrderStore) Create(ctx context.Context, order *models.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	copied := *order
	s.orders[order.ID.Hex()] = &copied
	return nil
}

func (s *fakeOrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if order, ok := s.orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, database.ErrNotFound
}

func (s *fakeOrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	orders := []models.Order{}
	for _, order := range s.orders {
		if order.User == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (s *fakeOrderStore) FindByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.Order, error) {
	orders := []models.Order{}
	for _, order := range s.orders {
		if order.Restaurant == restaurantID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (s *fakeOrderStore) UpdateStatus(ctx context.Context, id string, status string) error {
	order, ok := s.orders[id]
	if !ok {
		return database.ErrNotFound
	}
	order.Status = status
	return nil
}

func (s *fakeOrderStore) MarkPaid(ctx context.Context, id string, amount int64) error {
	s.markPaidCalls++
	order, ok := s.orders[id]
	if !ok {
		return database.ErrNotFound
	}
	order.TotalAmount = amount
	order.Status = models.OrderStatusPaid
	return nil
}

type fakeUserStore struct {
	byAuthID map[string]*models.User
	byID     map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byAuthID: map[string]*models.User{},
		byID:     map[primitive.ObjectID]*models.User{},
	}
}

func (s *fakeUserStore) add(user *models.User) {
	s.byAuthID[user.Auth0ID] = user
	s.byID[user.ID] = user
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	if _, ok := s.byAuthID[user.Auth0ID]; ok {
		return database.ErrAlreadyExists
	}
	s.add(user)
	return nil
}

func (s *fakeUserStore) FindByAuthID(ctx context.Context, auth0ID string) (*models.User, error) {
	if user, ok := s.byAuthID[auth0ID]; ok {
		return user, nil
	}
	return nil, database.ErrNotFound
}

func (s *fakeUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, database.ErrNotFound
}

func (s *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	if _, ok := s.byID[user.ID]; !ok {
		return database.ErrNotFound
	}
	s.add(user)
	return nil
}

type fakePaymentClient struct {
	url        string
	createErr  error
	lastParams helpers.CheckoutSessionParams
	calls      int

	event     *helpers.PaymentEvent
	verifyErr error
}

func (p *fakePaymentClient) CreateCheckoutSession(ctx context.Context, params helpers.CheckoutSessionParams) (string, error) {
	p.calls++
	p.lastParams = params
	return p.url, p.createErr
}

func (p *fakePaymentClient) VerifyEvent(payload []byte, sigHeader string) (*helpers.PaymentEvent, error) {
	if p.verifyErr != nil {
		return nil, p.verifyErr
	}
	return p.event, nil
}

type fakeUploader struct {
	url      string
	err      error
	received []byte
}

func (u *fakeUploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	u.received = data
	return u.url, u.err
}
