package handlers

import (
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/dimitrije/gostays-api/internal/middleware"
	"github.com/dimitrije/gostays-api/internal/services"
	"github.com/dimitrije/gostays-api/pkg/dto"
)

type ReviewHandler struct {
	reviewService  ReviewServiceInterface
	listingService ListingServiceInterface
}

func NewReviewHandler(reviewService ReviewServiceInterface, listingService ListingServiceInterface) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, listingService: listingService}
}

func (h *ReviewHandler) Create(c *drift.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		c.Unauthorized("not authenticated")
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid listing id")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.listingService.GetByID(ctx, listingID); err != nil {
		c.NotFound("listing not found")
		return
	}

	var req dto.CreateReviewRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Review.Rating < 1 || req.Review.Rating > 5 {
		c.BadRequest("rating must be between 1 and 5")
		return
	}
	if req.Review.Comment == "" {
		c.BadRequest("comment is required")
		return
	}

	review, err := h.reviewService.Create(ctx, listingID, user.ID, req.Review.Rating, req.Review.Comment)
	if err != nil {
		c.InternalServerError("failed to create review")
		return
	}

	_ = c.JSON(201, dto.ReviewResponse{Review: *review})
}

func (h *ReviewHandler) Delete(c *drift.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		c.Unauthorized("not authenticated")
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid listing id")
		return
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		c.BadRequest("invalid review id")
		return
	}

	ctx := c.Request.Context()

	review, err := h.reviewService.GetByID(ctx, reviewID)
	if err != nil || review.ListingID != listingID {
		c.NotFound("review not found")
		return
	}

	if review.AuthorID != user.ID && !user.IsAdmin() {
		c.Forbidden("cannot delete this review")
		return
	}

	if err := h.reviewService.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			c.NotFound("review not found")
			return
		}
		c.InternalServerError("failed to delete review")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "review deleted"})
}
