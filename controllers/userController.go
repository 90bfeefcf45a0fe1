package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"food-ordering-backend/database"
	"food-ordering-backend/middleware"
	"food-ordering-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestTimeout = 100 * time.Second

type UserController struct {
	users UserStore
}

func NewUserController(users UserStore) *UserController {
	return &UserController{users: users}
}

func (ctrl *UserController) GetCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user is not registered"})
			return
		}
		user, err := ctrl.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

type createUserRequest struct {
	Auth0ID string `json:"auth0Id" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}

// CreateCurrentUser registers the token subject as an internal user. It is
// called right after the first login against the identity provider, so an
// already-registered subject is not an error.
func (ctrl *UserController) CreateCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var req createUserRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
			return
		}

		if _, err := ctrl.users.FindByAuthID(ctx, req.Auth0ID); err == nil {
			c.Status(http.StatusOK)
			return
		} else if !errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking the user"})
			return
		}

		user := models.User{
			ID:      primitive.NewObjectID(),
			Auth0ID: req.Auth0ID,
			Email:   req.Email,
		}
		if err := ctrl.users.Create(ctx, &user); err != nil {
			if errors.Is(err, database.ErrAlreadyExists) {
				c.Status(http.StatusOK)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user was not created"})
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

type updateUserRequest struct {
	Name         string `json:"name" validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	City         string `json:"city" validate:"required"`
	Country      string `json:"country" validate:"required"`
}

func (ctrl *UserController) UpdateCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var req updateUserRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
			return
		}

		userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user is not registered"})
			return
		}
		user, err := ctrl.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the user"})
			return
		}

		user.Name = req.Name
		user.AddressLine1 = req.AddressLine1
		user.City = req.City
		user.Country = req.Country
		if err := ctrl.users.Update(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user update failed"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
