package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPlaced         = "placed"
	OrderStatusPaid           = "paid"
	OrderStatusInProgress     = "inProgress"
	OrderStatusOutForDelivery = "outForDelivery"
	OrderStatusDelivered      = "delivered"
)

// IsValidOrderStatus reports whether s is one of the five order states.
// Transitions between states are not validated; any authorized caller may
// set any value.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPlaced, OrderStatusPaid, OrderStatusInProgress,
		OrderStatusOutForDelivery, OrderStatusDelivered:
		return true
	}
	return false
}

type DeliveryDetails struct {
	Email        string `bson:"email" json:"email" validate:"required,email"`
	Name         string `bson:"name" json:"name" validate:"required"`
	AddressLine1 string `bson:"addressLine1" json:"addressLine1" validate:"required"`
	City         string `bson:"city" json:"city" validate:"required"`
}

// CartItem is a snapshot of what the customer ordered. It carries no price;
// prices are always re-derived from the restaurant's stored menu.
type CartItem struct {
	MenuItemID string `bson:"menuItemId" json:"menuItemId" validate:"required"`
	Quantity   int64  `bson:"quantity" json:"quantity" validate:"required,min=1"`
	Name       string `bson:"name" json:"name" validate:"required"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	Restaurant      primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	DeliveryDetails DeliveryDetails    `bson:"deliveryDetails" json:"deliveryDetails"`
	CartItems       []CartItem         `bson:"cartItems" json:"cartItems"`
	// TotalAmount is set by the payment reconciler once the processor
	// reports the paid amount; zero until then.
	TotalAmount int64     `bson:"totalAmount,omitempty" json:"totalAmount,omitempty"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
