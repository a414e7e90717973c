package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/dimitrije/gostays-api/internal/database"
	"github.com/dimitrije/gostays-api/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		ExternalID: fmt.Sprintf("user_ext_%d", f.counter),
		Email:      fmt.Sprintf("user%d@example.com", f.counter),
		Username:   fmt.Sprintf("testuser%d", f.counter),
		Role:       models.RoleUser,
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (external_id, email, username, avatar_url, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, external_id, email, username, avatar_url, role, created_at, updated_at
	`, user.ExternalID, user.Email, user.Username, user.AvatarURL, user.Role).Scan(
		&user.ID, &user.ExternalID, &user.Email, &user.Username,
		&user.AvatarURL, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithExternalID sets the user's external identity id
func WithExternalID(externalID string) UserOption {
	return func(u *models.User) {
		u.ExternalID = externalID
	}
}

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithUsername sets the user's username
func WithUsername(username string) UserOption {
	return func(u *models.User) {
		u.Username = username
	}
}

// WithRole sets the user's role
func WithRole(role string) UserOption {
	return func(u *models.User) {
		u.Role = role
	}
}

// CreateListing creates a test listing owned by the given user
func (f *Fixtures) CreateListing(t *testing.T, owner *models.User, opts ...ListingOption) *models.Listing {
	t.Helper()
	f.counter++

	listing := &models.Listing{
		OwnerID:     owner.ID,
		Title:       fmt.Sprintf("Test Listing %d", f.counter),
		Description: "A cozy place to stay",
		Price:       120,
		Location:    "Belgrade",
		Country:     "Serbia",
		ImageURL:    models.PlaceholderImageURL,
		Longitude:   20.4573,
		Latitude:    44.8176,
	}

	for _, opt := range opts {
		opt(listing)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO listings (owner_id, title, description, price, location, country, image_url, longitude, latitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, listing.OwnerID, listing.Title, listing.Description, listing.Price, listing.Location,
		listing.Country, listing.ImageURL, listing.Longitude, listing.Latitude,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}

	return listing
}

// ListingOption configures a test listing
type ListingOption func(*models.Listing)

// WithTitle sets the listing's title
func WithTitle(title string) ListingOption {
	return func(l *models.Listing) {
		l.Title = title
	}
}

// WithPrice sets the listing's price
func WithPrice(price float64) ListingOption {
	return func(l *models.Listing) {
		l.Price = price
	}
}

// CreateReview creates a test review on a listing
func (f *Fixtures) CreateReview(t *testing.T, listing *models.Listing, author *models.User, rating int, comment string) *models.Review {
	t.Helper()

	review := &models.Review{
		ListingID: listing.ID,
		AuthorID:  author.ID,
		Rating:    rating,
		Comment:   comment,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO reviews (listing_id, author_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, review.ListingID, review.AuthorID, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create review: %v", err)
	}

	return review
}
