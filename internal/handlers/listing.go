package handlers

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dimitrije/gostays-api/internal/geocode"
	"github.com/dimitrije/gostays-api/internal/middleware"
	"github.com/dimitrije/gostays-api/internal/models"
	"github.com/dimitrije/gostays-api/internal/services"
	"github.com/dimitrije/gostays-api/pkg/dto"
)

type ListingHandler struct {
	listingService ListingServiceInterface
	reviewService  ReviewServiceInterface
	geocoder       geocode.Geocoder
	sanitizer      *bluemonday.Policy
	log            *slog.Logger
}

func NewListingHandler(
	listingService ListingServiceInterface,
	reviewService ReviewServiceInterface,
	geocoder geocode.Geocoder,
	log *slog.Logger,
) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		reviewService:  reviewService,
		geocoder:       geocoder,
		sanitizer:      bluemonday.UGCPolicy(),
		log:            log,
	}
}

func (h *ListingHandler) List(c *drift.Context) {
	listings, err := h.listingService.List(c.Request.Context())
	if err != nil {
		c.InternalServerError("failed to list listings")
		return
	}

	_ = c.JSON(200, listings)
}

func (h *ListingHandler) Get(c *drift.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid listing id")
		return
	}

	ctx := c.Request.Context()

	listing, err := h.listingService.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			c.NotFound("listing not found")
			return
		}
		c.InternalServerError("failed to get listing")
		return
	}

	reviews, err := h.reviewService.ListForListing(ctx, listingID)
	if err != nil {
		c.InternalServerError("failed to get reviews")
		return
	}

	response := dto.ListingResponse{Listing: *listing, Reviews: make([]dto.ReviewResponse, len(reviews))}
	for i, r := range reviews {
		response.Reviews[i] = dto.ReviewResponse{Review: r}
	}

	_ = c.JSON(200, response)
}

func (h *ListingHandler) Create(c *drift.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateListingRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	l := req.Listing
	if l.Title == "" || l.Location == "" || l.Country == "" {
		c.BadRequest("title, location and country are required")
		return
	}
	if l.Price < 0 {
		c.BadRequest("price must not be negative")
		return
	}

	pos, err := h.geocoder.Geocode(c.Request.Context(), l.Location+", "+l.Country)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResults) {
			c.BadRequest("location could not be geocoded")
			return
		}
		h.log.Error("geocoding failed", "location", l.Location, "error", err)
		c.InternalServerError("map service is not available")
		return
	}

	imageURL := l.ImageURL
	if imageURL == "" {
		imageURL = models.PlaceholderImageURL
	}

	listing, err := h.listingService.Create(c.Request.Context(), services.CreateListingParams{
		OwnerID:     user.ID,
		Title:       l.Title,
		Description: h.sanitizer.Sanitize(l.Description),
		Price:       l.Price,
		Location:    l.Location,
		Country:     l.Country,
		ImageURL:    imageURL,
		Longitude:   pos.Longitude,
		Latitude:    pos.Latitude,
	})
	if err != nil {
		c.InternalServerError("failed to create listing")
		return
	}

	_ = c.JSON(201, listing)
}

func (h *ListingHandler) Update(c *drift.Context) {
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

	existing, err := h.listingService.GetByID(ctx, listingID)
	if err != nil {
		c.NotFound("listing not found")
		return
	}

	if existing.OwnerID != user.ID && !user.IsAdmin() {
		c.Forbidden("cannot modify this listing")
		return
	}

	var req dto.UpdateListingRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	l := req.Listing
	params := services.UpdateListingParams{
		Title:   l.Title,
		Price:   l.Price,
		Country: l.Country,
	}
	if l.Description != nil {
		clean := h.sanitizer.Sanitize(*l.Description)
		params.Description = &clean
	}
	if l.ImageURL != nil {
		imageURL := *l.ImageURL
		if imageURL == "" {
			imageURL = models.PlaceholderImageURL
		}
		params.ImageURL = &imageURL
	}
	if l.Price != nil && *l.Price < 0 {
		c.BadRequest("price must not be negative")
		return
	}

	if l.Location != nil && *l.Location != existing.Location {
		params.Location = l.Location
		country := existing.Country
		if l.Country != nil {
			country = *l.Country
		}
		// Re-geocode for the new address. On failure keep the old
		// coordinates rather than rejecting the edit.
		if pos, err := h.geocoder.Geocode(ctx, *l.Location+", "+country); err == nil {
			params.Longitude = &pos.Longitude
			params.Latitude = &pos.Latitude
		} else {
			h.log.Warn("re-geocoding failed, keeping previous coordinates", "listing_id", listingID, "error", err)
		}
	}

	listing, err := h.listingService.Update(ctx, listingID, params)
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			c.NotFound("listing not found")
			return
		}
		c.InternalServerError("failed to update listing")
		return
	}

	_ = c.JSON(200, listing)
}

func (h *ListingHandler) Delete(c *drift.Context) {
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

	existing, err := h.listingService.GetByID(ctx, listingID)
	if err != nil {
		c.NotFound("listing not found")
		return
	}

	if existing.OwnerID != user.ID && !user.IsAdmin() {
		c.Forbidden("cannot delete this listing")
		return
	}

	if err := h.listingService.Delete(ctx, listingID); err != nil {
		c.InternalServerError("failed to delete listing")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "listing deleted"})
}
