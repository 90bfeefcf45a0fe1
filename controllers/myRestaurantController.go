package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"food-ordering-backend/database"
	"food-ordering-backend/middleware"
	"food-ordering-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxImageSize = 5 << 20 // 5mb, same cap the upload form enforces

type MyRestaurantController struct {
	restaurants RestaurantStore
	orders      OrderStore
	uploader    ImageUploader
	notifier    *Notifier
}

func NewMyRestaurantController(restaurants RestaurantStore, orders OrderStore, uploader ImageUploader, notifier *Notifier) *MyRestaurantController {
	return &MyRestaurantController{
		restaurants: restaurants,
		orders:      orders,
		uploader:    uploader,
		notifier:    notifier,
	}
}

func (ctrl *MyRestaurantController) GetMyRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		userID, ok := callerID(c)
		if !ok {
			return
		}
		restaurant, err := ctrl.restaurants.FindByUser(ctx, userID)
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

// restaurantForm is the multipart body of create/update. Cuisines arrive as
// a repeated form field, menu items as one JSON-encoded field.
type restaurantForm struct {
	RestaurantName        string   `form:"restaurantName" validate:"required"`
	City                  string   `form:"city" validate:"required"`
	Country               string   `form:"country" validate:"required"`
	DeliveryPrice         int64    `form:"deliveryPrice" validate:"gte=0"`
	EstimatedDeliveryTime int      `form:"estimatedDeliveryTime" validate:"gte=0"`
	Cuisines              []string `form:"cuisines" validate:"required,min=1"`
	MenuItems             string   `form:"menuItems" validate:"required"`
}

type menuItemForm struct {
	Name  string `json:"name" validate:"required"`
	Price int64  `json:"price" validate:"gte=0"`
}

func (ctrl *MyRestaurantController) CreateMyRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		userID, ok := callerID(c)
		if !ok {
			return
		}

		if _, err := ctrl.restaurants.FindByUser(ctx, userID); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "user restaurant already exists"})
			return
		} else if !errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking the restaurant"})
			return
		}

		form, menuItems, ok := ctrl.bindRestaurantForm(c)
		if !ok {
			return
		}

		fileHeader, err := c.FormFile("imageFile")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"imageFile is required"}})
			return
		}
		imageURL, ok := ctrl.uploadImage(ctx, c, fileHeader)
		if !ok {
			return
		}

		restaurant := models.Restaurant{
			ID:                    primitive.NewObjectID(),
			User:                  userID,
			RestaurantName:        form.RestaurantName,
			City:                  form.City,
			Country:               form.Country,
			DeliveryPrice:         form.DeliveryPrice,
			EstimatedDeliveryTime: form.EstimatedDeliveryTime,
			Cuisines:              form.Cuisines,
			MenuItems:             menuItems,
			ImageURL:              imageURL,
			LastUpdated:           time.Now().UTC(),
		}
		if err := ctrl.restaurants.Create(ctx, &restaurant); err != nil {
			if errors.Is(err, database.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "user restaurant already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "restaurant was not created"})
			return
		}
		c.JSON(http.StatusCreated, restaurant)
	}
}

func (ctrl *MyRestaurantController) UpdateMyRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		userID, ok := callerID(c)
		if !ok {
			return
		}
		restaurant, err := ctrl.restaurants.FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}

		form, menuItems, ok := ctrl.bindRestaurantForm(c)
		if !ok {
			return
		}

		restaurant.RestaurantName = form.RestaurantName
		restaurant.City = form.City
		restaurant.Country = form.Country
		restaurant.DeliveryPrice = form.DeliveryPrice
		restaurant.EstimatedDeliveryTime = form.EstimatedDeliveryTime
		restaurant.Cuisines = form.Cuisines
		restaurant.MenuItems = menuItems
		restaurant.LastUpdated = time.Now().UTC()

		// image is optional on update
		if fileHeader, err := c.FormFile("imageFile"); err == nil {
			imageURL, ok := ctrl.uploadImage(ctx, c, fileHeader)
			if !ok {
				return
			}
			restaurant.ImageURL = imageURL
		}

		if err := ctrl.restaurants.Update(ctx, restaurant); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "restaurant update failed"})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}

func (ctrl *MyRestaurantController) GetMyRestaurantOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		userID, ok := callerID(c)
		if !ok {
			return
		}
		restaurant, err := ctrl.restaurants.FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}
		orders, err := ctrl.orders.FindByRestaurant(ctx, restaurant.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus overwrites an order's status after checking that the
// caller owns the restaurant the order was placed against. Only membership
// in the status enum is validated, not the transition itself.
func (ctrl *MyRestaurantController) UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		userID, ok := callerID(c)
		if !ok {
			return
		}

		var req updateOrderStatusRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
			return
		}
		if !models.IsValidOrderStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"status must be one of placed, paid, inProgress, outForDelivery, delivered"}})
			return
		}

		orderID := c.Param("order_id")
		order, err := ctrl.orders.GetByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		restaurant, err := ctrl.restaurants.GetByID(ctx, order.Restaurant.Hex())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}
		if restaurant.User != userID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not the restaurant owner"})
			return
		}

		if err := ctrl.orders.UpdateStatus(ctx, orderID, req.Status); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order status update failed"})
			return
		}
		order.Status = req.Status
		ctrl.notifier.Broadcast("orderStatusUpdate", order)
		c.JSON(http.StatusOK, order)
	}
}

func (ctrl *MyRestaurantController) bindRestaurantForm(c *gin.Context) (*restaurantForm, []models.MenuItem, bool) {
	var form restaurantForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	if err := validate.Struct(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
		return nil, nil, false
	}

	var items []menuItemForm
	if err := json.Unmarshal([]byte(form.MenuItems), &items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"menuItems must be a JSON array"}})
		return nil, nil, false
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"menuItems must not be empty"}})
		return nil, nil, false
	}
	menuItems := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if err := validate.Struct(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
			return nil, nil, false
		}
		menuItems = append(menuItems, models.MenuItem{
			ID:    primitive.NewObjectID(),
			Name:  item.Name,
			Price: item.Price,
		})
	}
	return &form, menuItems, true
}

func (ctrl *MyRestaurantController) uploadImage(ctx context.Context, c *gin.Context, fileHeader *multipart.FileHeader) (string, bool) {
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"imageFile exceeds the 5mb limit"}})
		return "", false
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while reading the image"})
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while reading the image"})
		return "", false
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	imageURL, err := ctrl.uploader.Upload(ctx, data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
		return "", false
	}
	return imageURL, true
}

// callerID reads the internal user id set by the auth middleware.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user is not registered"})
		return primitive.NilObjectID, false
	}
	return userID, true
}
