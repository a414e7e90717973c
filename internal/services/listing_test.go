package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimitrije/gostays-api/internal/database"
)

func setupListingService(t *testing.T) (*ListingService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewListingService(db), mock
}

func listingRow(id, ownerID uuid.UUID, title string) []any {
	now := time.Now()
	return []any{id, ownerID, title, "a place", 100.0, "Belgrade", "Serbia", "https://img.example.com/1.png", 20.45, 44.81, now, now}
}

func TestListingService_List(t *testing.T) {
	svc, mock := setupListingService(t)
	ctx := context.Background()
	listingID := uuid.New()
	ownerID := uuid.New()

	columns := []string{
		"id", "owner_id", "title", "description", "price", "location",
		"country", "image_url", "longitude", "latitude", "created_at", "updated_at", "username",
	}
	rows := pgxmock.NewRows(columns).
		AddRow(append(listingRow(listingID, ownerID, "Apartment"), "ana")...)

	mock.ExpectQuery(`SELECT .+ FROM listings l\s+JOIN users u`).WillReturnRows(rows)

	listings, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Apartment", listings[0].Title)
	assert.Equal(t, "ana", listings[0].OwnerUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingService_Update_OnlyChangedColumns(t *testing.T) {
	svc, mock := setupListingService(t)
	ctx := context.Background()
	listingID := uuid.New()
	ownerID := uuid.New()
	title := "Renovated Apartment"

	columns := []string{
		"id", "owner_id", "title", "description", "price", "location",
		"country", "image_url", "longitude", "latitude", "created_at", "updated_at",
	}
	rows := pgxmock.NewRows(columns).
		AddRow(listingRow(listingID, ownerID, title)...)

	mock.ExpectQuery(`UPDATE listings SET title = \$1, updated_at = NOW\(\)`).
		WithArgs(title, listingID).
		WillReturnRows(rows)

	listing, err := svc.Update(ctx, listingID, UpdateListingParams{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, title, listing.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingService_Delete_NotFound(t *testing.T) {
	svc, mock := setupListingService(t)
	ctx := context.Background()
	listingID := uuid.New()

	mock.ExpectExec(`DELETE FROM listings WHERE id`).
		WithArgs(listingID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(ctx, listingID)

	assert.ErrorIs(t, err, ErrListingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
