package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"food-ordering-backend/database"
	"food-ordering-backend/models"

	"github.com/gin-gonic/gin"
)

const searchPageSize = 10

type RestaurantController struct {
	restaurants RestaurantStore
}

func NewRestaurantController(restaurants RestaurantStore) *RestaurantController {
	return &RestaurantController{restaurants: restaurants}
}

func (ctrl *RestaurantController) GetRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		restaurant, err := ctrl.restaurants.GetByID(ctx, c.Param("restaurant_id"))
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}

type pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

type searchResponse struct {
	Data       []models.Restaurant `json:"data"`
	Pagination pagination          `json:"pagination"`
}

// SearchRestaurants filters by city (required path parameter), optional
// cuisine list and free-text query, sorts ascending by the requested field
// and paginates with a fixed page size. A city with no restaurants at all
// answers 200 with an empty envelope, never 404.
func (ctrl *RestaurantController) SearchRestaurants() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		city := c.Param("city")
		cityCount, err := ctrl.restaurants.CountByCity(ctx, city)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while searching restaurants"})
			return
		}
		if cityCount == 0 {
			c.JSON(http.StatusOK, searchResponse{
				Data:       []models.Restaurant{},
				Pagination: pagination{Total: 0, Page: 1, Pages: 1},
			})
			return
		}

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		params := database.SearchParams{
			City:        city,
			SearchQuery: c.Query("searchQuery"),
			SortOption:  c.DefaultQuery("sortOption", "lastUpdated"),
			Page:        page,
		}
		if selected := c.Query("selectedCuisines"); selected != "" {
			params.Cuisines = strings.Split(selected, ",")
		}

		result, err := ctrl.restaurants.Search(ctx, params)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while searching restaurants"})
			return
		}
		c.JSON(http.StatusOK, searchResponse{
			Data: result.Restaurants,
			Pagination: pagination{
				Total: result.Total,
				Page:  page,
				Pages: int((result.Total + searchPageSize - 1) / searchPageSize),
			},
		})
	}
}
