package models

import (
	"time"

	"github.com/google/uuid"
)

// PlaceholderImageURL is used when a listing is created or updated without
// an image.
const PlaceholderImageURL = "https://via.placeholder.com/300x200.png?text=No+Image"

type Listing struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Country     string    `json:"country"`
	ImageURL    string    `json:"image_url"`
	Longitude   float64   `json:"longitude"`
	Latitude    float64   `json:"latitude"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	OwnerUsername string `json:"owner_username,omitempty"`
}
