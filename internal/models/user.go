package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account status values. Suspended blocks login regardless of password.
const (
	StatusActive    = "Active"
	StatusPending   = "Pending"
	StatusSuspended = "Suspended"
)

// User types selectable at registration.
const (
	UserTypeSeeker  = "seeker"
	UserTypeDonor   = "donor"
	UserTypeKitchen = "kitchen"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"` // stored lower-cased, unique
	Password string `bson:"password" json:"-"`  // argon2id hash, never returned in JSON
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	UserType string `bson:"user_type" json:"userType"`

	Address     string `bson:"address,omitempty" json:"address,omitempty"`
	City        string `bson:"city,omitempty" json:"city,omitempty"`
	Zip         string `bson:"zip,omitempty" json:"zip,omitempty"`
	KitchenName string `bson:"kitchen_name,omitempty" json:"kitchenName,omitempty"`

	ProfileImage string `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
	Status       string `bson:"status" json:"status"`
}

// Public returns the fields safe to hand back to the client.
func (u *User) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID.Hex(),
		"name":         u.Name,
		"email":        u.Email,
		"userType":     u.UserType,
		"phone":        u.Phone,
		"address":      u.Address,
		"city":         u.City,
		"zip":          u.Zip,
		"kitchenName":  u.KitchenName,
		"profileImage": u.ProfileImage,
		"status":       u.Status,
		"created_at":   u.CreatedAt,
	}
}
