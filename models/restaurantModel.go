package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem is embedded in its restaurant document; it has no independent
// lifecycle. Prices are integer minor units (cents).
type MenuItem struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name" validate:"required"`
	Price int64              `bson:"price" json:"price" validate:"gte=0"`
}

type Restaurant struct {
	ID                    primitive.ObjectID `bson:"_id" json:"_id"`
	User                  primitive.ObjectID `bson:"user" json:"user"`
	RestaurantName        string             `bson:"restaurantName" json:"restaurantName" validate:"required"`
	City                  string             `bson:"city" json:"city" validate:"required"`
	Country               string             `bson:"country" json:"country" validate:"required"`
	DeliveryPrice         int64              `bson:"deliveryPrice" json:"deliveryPrice" validate:"gte=0"`
	EstimatedDeliveryTime int                `bson:"estimatedDeliveryTime" json:"estimatedDeliveryTime" validate:"gte=0"`
	Cuisines              []string           `bson:"cuisines" json:"cuisines" validate:"required,min=1"`
	MenuItems             []MenuItem         `bson:"menuItems" json:"menuItems" validate:"required,min=1,dive"`
	ImageURL              string             `bson:"imageUrl" json:"imageUrl"`
	LastUpdated           time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}

// FindMenuItem resolves a cart entry's menu item id against the stored menu.
func (r *Restaurant) FindMenuItem(id string) (*MenuItem, bool) {
	for i := range r.MenuItems {
		if r.MenuItems[i].ID.Hex() == id {
			return &r.MenuItems[i], true
		}
	}
	return nil, false
}
