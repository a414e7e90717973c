package dto

import "github.com/dimitrije/gostays-api/internal/models"

type ReviewPayload struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type CreateReviewRequest struct {
	Review ReviewPayload `json:"review"`
}

type ReviewResponse struct {
	models.Review
}
