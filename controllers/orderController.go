package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"food-ordering-backend/database"
	"food-ordering-backend/helpers"
	"food-ordering-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errMenuItemNotFound = errors.New("cart references a menu item the restaurant does not have")

type OrderController struct {
	orders      OrderStore
	restaurants RestaurantStore
	payments    PaymentClient
	notifier    *Notifier
}

func NewOrderController(orders OrderStore, restaurants RestaurantStore, payments PaymentClient, notifier *Notifier) *OrderController {
	return &OrderController{
		orders:      orders,
		restaurants: restaurants,
		payments:    payments,
		notifier:    notifier,
	}
}

func (ctrl *OrderController) GetMyOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		userID, ok := callerID(c)
		if !ok {
			return
		}
		orders, err := ctrl.orders.FindByUser(ctx, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

type checkoutSessionRequest struct {
	CartItems       []models.CartItem      `json:"cartItems" validate:"required,min=1,dive"`
	DeliveryDetails models.DeliveryDetails `json:"deliveryDetails" validate:"required"`
	RestaurantID    string                 `json:"restaurantId" validate:"required"`
}

// CreateCheckoutSession prices the cart against the restaurant's stored
// menu, asks the processor for a hosted payment page and only then persists
// the order, so a session that never produced a redirect URL leaves no
// unpayable order behind.
func (ctrl *OrderController) CreateCheckoutSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		userID, ok := callerID(c)
		if !ok {
			return
		}

		var req checkoutSessionRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
			return
		}

		restaurant, err := ctrl.restaurants.GetByID(ctx, req.RestaurantID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}

		lineItems, err := buildLineItems(req.CartItems, restaurant)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order := models.Order{
			ID:              primitive.NewObjectID(),
			Restaurant:      restaurant.ID,
			User:            userID,
			DeliveryDetails: req.DeliveryDetails,
			CartItems:       req.CartItems,
			Status:          models.OrderStatusPlaced,
			CreatedAt:       time.Now().UTC(),
		}

		url, err := ctrl.payments.CreateCheckoutSession(ctx, helpers.CheckoutSessionParams{
			LineItems:     lineItems,
			DeliveryPrice: restaurant.DeliveryPrice,
			OrderID:       order.ID.Hex(),
			RestaurantID:  restaurant.ID.Hex(),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating payment session"})
			return
		}
		if url == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating payment session"})
			return
		}

		if err := ctrl.orders.Create(ctx, &order); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}
		ctrl.notifier.Broadcast("newOrder", order)
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}

// StripeWebhookHandler is the payment reconciler. Once the signature
// verifies the event is always acknowledged with 200, even when no matching
// order exists, so the processor does not retry-storm us.
func (ctrl *OrderController) StripeWebhookHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		payload, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read payload"})
			return
		}

		event, err := ctrl.payments.VerifyEvent(payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("webhook error: %v", err)})
			return
		}

		if event.Type == helpers.EventCheckoutCompleted {
			if err := ctrl.orders.MarkPaid(ctx, event.OrderID, event.AmountTotal); err != nil {
				// The checkout request may not have persisted the order
				// yet; log and acknowledge anyway.
				log.Printf("webhook: could not mark order %s paid: %v", event.OrderID, err)
			} else if order, err := ctrl.orders.GetByID(ctx, event.OrderID); err == nil {
				ctrl.notifier.Broadcast("orderPaid", order)
			}
		}
		c.Status(http.StatusOK)
	}
}

// buildLineItems resolves every cart entry against the restaurant's stored
// menu. Unit prices come from the menu snapshot only; nothing the caller
// sends can influence them.
func buildLineItems(cartItems []models.CartItem, restaurant *models.Restaurant) ([]helpers.LineItem, error) {
	lineItems := make([]helpers.LineItem, 0, len(cartItems))
	for _, cartItem := range cartItems {
		menuItem, found := restaurant.FindMenuItem(cartItem.MenuItemID)
		if !found {
			return nil, fmt.Errorf("%w: %s", errMenuItemNotFound, cartItem.MenuItemID)
		}
		lineItems = append(lineItems, helpers.LineItem{
			Name:       menuItem.Name,
			UnitAmount: menuItem.Price,
			Quantity:   cartItem.Quantity,
		})
	}
	return lineItems, nil
}
