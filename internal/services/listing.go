package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dimitrije/gostays-api/internal/database"
	"github.com/dimitrije/gostays-api/internal/models"
)

var ErrListingNotFound = errors.New("listing not found")

const listingColumns = `l.id, l.owner_id, l.title, l.description, l.price, l.location,
	l.country, l.image_url, l.longitude, l.latitude, l.created_at, l.updated_at`

type ListingService struct {
	db *database.DB
}

func NewListingService(db *database.DB) *ListingService {
	return &ListingService{db: db}
}

type CreateListingParams struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Price       float64
	Location    string
	Country     string
	ImageURL    string
	Longitude   float64
	Latitude    float64
}

type UpdateListingParams struct {
	Title       *string
	Description *string
	Price       *float64
	Location    *string
	Country     *string
	ImageURL    *string
	Longitude   *float64
	Latitude    *float64
}

func (s *ListingService) List(ctx context.Context) ([]models.Listing, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+listingColumns+`, u.username
		FROM listings l
		JOIN users u ON u.id = l.owner_id
		ORDER BY l.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(
			&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Price, &l.Location,
			&l.Country, &l.ImageURL, &l.Longitude, &l.Latitude, &l.CreatedAt, &l.UpdatedAt,
			&l.OwnerUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (s *ListingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var l models.Listing
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+listingColumns+`, u.username
		FROM listings l
		JOIN users u ON u.id = l.owner_id
		WHERE l.id = $1
	`, id).Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Price, &l.Location,
		&l.Country, &l.ImageURL, &l.Longitude, &l.Latitude, &l.CreatedAt, &l.UpdatedAt,
		&l.OwnerUsername,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &l, nil
}

func (s *ListingService) Create(ctx context.Context, params CreateListingParams) (*models.Listing, error) {
	var l models.Listing
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO listings (owner_id, title, description, price, location, country, image_url, longitude, latitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, owner_id, title, description, price, location, country, image_url, longitude, latitude, created_at, updated_at
	`, params.OwnerID, params.Title, params.Description, params.Price, params.Location,
		params.Country, params.ImageURL, params.Longitude, params.Latitude,
	).Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Price, &l.Location,
		&l.Country, &l.ImageURL, &l.Longitude, &l.Latitude, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return &l, nil
}

func (s *ListingService) Update(ctx context.Context, id uuid.UUID, params UpdateListingParams) (*models.Listing, error) {
	sets := make([]string, 0, 9)
	args := make([]any, 0, 9)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if params.Title != nil {
		add("title", *params.Title)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.Price != nil {
		add("price", *params.Price)
	}
	if params.Location != nil {
		add("location", *params.Location)
	}
	if params.Country != nil {
		add("country", *params.Country)
	}
	if params.ImageURL != nil {
		add("image_url", *params.ImageURL)
	}
	if params.Longitude != nil {
		add("longitude", *params.Longitude)
	}
	if params.Latitude != nil {
		add("latitude", *params.Latitude)
	}
	if len(sets) == 0 {
		return s.GetByID(ctx, id)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE listings SET %s
		WHERE id = $%d
		RETURNING id, owner_id, title, description, price, location, country, image_url, longitude, latitude, created_at, updated_at
	`, strings.Join(sets, ", "), len(args))

	var l models.Listing
	err := s.db.Pool.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Price, &l.Location,
		&l.Country, &l.ImageURL, &l.Longitude, &l.Latitude, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	return &l, nil
}

func (s *ListingService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrListingNotFound
	}
	return nil
}
