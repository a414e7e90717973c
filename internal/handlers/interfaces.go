package handlers

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/dimitrije/gostays-api/internal/identity"
	"github.com/dimitrije/gostays-api/internal/models"
	"github.com/dimitrije/gostays-api/internal/services"
)

// ReconcilerInterface defines the methods used by handlers from the Reconciler
type ReconcilerInterface interface {
	Reconcile(ctx context.Context, ev *identity.Event) (*identity.Result, error)
}

// ListingServiceInterface defines the methods used by handlers from ListingService
type ListingServiceInterface interface {
	List(ctx context.Context) ([]models.Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	Create(ctx context.Context, params services.CreateListingParams) (*models.Listing, error)
	Update(ctx context.Context, id uuid.UUID, params services.UpdateListingParams) (*models.Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewServiceInterface defines the methods used by handlers from ReviewService
type ReviewServiceInterface interface {
	Create(ctx context.Context, listingID, authorID uuid.UUID, rating int, comment string) (*models.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListForListing(ctx context.Context, listingID uuid.UUID) ([]models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImageStoreInterface defines the methods used by handlers from storage.ImageStore
type ImageStoreInterface interface {
	UploadImage(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error)
}
