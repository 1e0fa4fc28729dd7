package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing lifecycle states. Only StatusAvailable is produced today;
// claiming/expiring a listing is an extension point with no endpoint yet.
const (
	DonationAvailable = "available"
	DonationClaimed   = "claimed"
)

// Location is the pickup point of a donation.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Donation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Title           string   `bson:"title" json:"title"`
	Description     string   `bson:"description" json:"description"`
	FoodType        string   `bson:"food_type" json:"foodType"`
	PreparationTime string   `bson:"preparation_time" json:"preparationTime"`
	Quantity        int      `bson:"quantity" json:"quantity"`
	Location        Location `bson:"location" json:"location"`
	Images          []string `bson:"images" json:"images"`
	DonorEmail      string   `bson:"donor_email" json:"donoremail"`
	Status          string   `bson:"status" json:"status"`
}
