package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-ordering-backend/database"
	"food-ordering-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRestaurantRouter(restaurants *fakeRestaurantStore) *gin.Engine {
	ctrl := NewRestaurantController(restaurants)
	router := gin.New()
	router.GET("/restaurant/:restaurant_id", ctrl.GetRestaurant())
	router.GET("/restaurant/search/:city", ctrl.SearchRestaurants())
	return router
}

func TestGetRestaurant(t *testing.T) {
	restaurant := testRestaurant(primitive.NewObjectID())
	restaurants := newFakeRestaurantStore()
	restaurants.add(restaurant)
	router := newRestaurantRouter(restaurants)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/restaurant/"+restaurant.ID.Hex(), nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var got models.Restaurant
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Equal(t, restaurant.ID, got.ID)
	assert.Equal(t, "Napoli Express", got.RestaurantName)
}

func TestGetRestaurantNotFound(t *testing.T) {
	router := newRestaurantRouter(newFakeRestaurantStore())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/restaurant/"+primitive.NewObjectID().Hex(), nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestSearchRestaurantsEmptyCity(t *testing.T) {
	// a city with no restaurants answers an empty envelope, not 404
	router := newRestaurantRouter(newFakeRestaurantStore())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/restaurant/search/atlantis", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var got searchResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Empty(t, got.Data)
	assert.Equal(t, pagination{Total: 0, Page: 1, Pages: 1}, got.Pagination)
}

func TestSearchRestaurantsPagination(t *testing.T) {
	restaurant := testRestaurant(primitive.NewObjectID())
	restaurants := newFakeRestaurantStore()
	restaurants.cityCounts["london"] = 25
	restaurants.searchResult = &database.SearchResult{
		Restaurants: []models.Restaurant{*restaurant},
		Total:       25,
	}
	router := newRestaurantRouter(restaurants)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/restaurant/search/London?page=2", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var got searchResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Equal(t, pagination{Total: 25, Page: 2, Pages: 3}, got.Pagination)
	require.Len(t, got.Data, 1)
}

func TestSearchRestaurantsDefaultsBadPage(t *testing.T) {
	restaurants := newFakeRestaurantStore()
	restaurants.cityCounts["london"] = 3
	restaurants.searchResult = &database.SearchResult{Restaurants: []models.Restaurant{}, Total: 3}
	router := newRestaurantRouter(restaurants)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/restaurant/search/london?page=banana", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var got searchResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Pagination.Page)
}
