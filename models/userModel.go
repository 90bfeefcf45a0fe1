package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is keyed by the external identity provider's subject id (Auth0Id);
// authentication itself happens against the provider, we only map subjects
// to profile records.
type User struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Auth0ID      string             `bson:"auth0Id" json:"auth0Id" validate:"required"`
	Email        string             `bson:"email" json:"email" validate:"required,email"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	AddressLine1 string             `bson:"addressLine1,omitempty" json:"addressLine1,omitempty"`
	City         string             `bson:"city,omitempty" json:"city,omitempty"`
	Country      string             `bson:"country,omitempty" json:"country,omitempty"`
}
