package dto

import "github.com/dimitrije/gostays-api/internal/models"

type ListingPayload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	Country     string  `json:"country"`
	ImageURL    string  `json:"image_url"`
}

type CreateListingRequest struct {
	Listing ListingPayload `json:"listing"`
}

type UpdateListingPayload struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Location    *string  `json:"location"`
	Country     *string  `json:"country"`
	ImageURL    *string  `json:"image_url"`
}

type UpdateListingRequest struct {
	Listing UpdateListingPayload `json:"listing"`
}

type ListingResponse struct {
	models.Listing
	Reviews []ReviewResponse `json:"reviews,omitempty"`
}
