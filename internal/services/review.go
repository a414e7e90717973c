package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dimitrije/gostays-api/internal/database"
	"github.com/dimitrije/gostays-api/internal/models"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewService struct {
	db *database.DB
}

func NewReviewService(db *database.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) Create(ctx context.Context, listingID, authorID uuid.UUID, rating int, comment string) (*models.Review, error) {
	var r models.Review
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO reviews (listing_id, author_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, listing_id, author_id, rating, comment, created_at, updated_at
	`, listingID, authorID, rating, comment).Scan(
		&r.ID, &r.ListingID, &r.AuthorID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &r, nil
}

func (s *ReviewService) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var r models.Review
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, listing_id, author_id, rating, comment, created_at, updated_at
		FROM reviews WHERE id = $1
	`, id).Scan(
		&r.ID, &r.ListingID, &r.AuthorID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &r, nil
}

func (s *ReviewService) ListForListing(ctx context.Context, listingID uuid.UUID) ([]models.Review, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT r.id, r.listing_id, r.author_id, r.rating, r.comment, r.created_at, r.updated_at,
			u.username, u.avatar_url
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.listing_id = $1
		ORDER BY r.created_at DESC
	`, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(
			&r.ID, &r.ListingID, &r.AuthorID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt,
			&r.AuthorUsername, &r.AuthorAvatarURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrReviewNotFound
	}
	return nil
}
