package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dimitrije/gostays-api/internal/models"
	"github.com/dimitrije/gostays-api/internal/services"
	"github.com/dimitrije/gostays-api/pkg/dto"
	"github.com/dimitrije/gostays-api/tests/testutil"
)

func newReviewApp(t *testing.T, user *models.User, reviews *testutil.MockReviewService, listings *testutil.MockListingService) (http.Handler, string) {
	t.Helper()

	authMW, syncMW, token := authStack(t, user)
	handler := NewReviewHandler(reviews, listings)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(authMW)
	app.Use(syncMW)
	app.Post("/listings/:id/reviews", handler.Create)
	app.Delete("/listings/:id/reviews/:reviewId", handler.Delete)
	return app, token
}

func TestReviewHandler_Create_Success(t *testing.T) {
	user := &models.User{ID: uuid.New(), ExternalID: "user_abc123", Username: "ana"}
	reviews := new(testutil.MockReviewService)
	listings := new(testutil.MockListingService)

	listingID := uuid.New()
	listings.On("GetByID", mock.Anything, listingID).Return(&models.Listing{ID: listingID}, nil)
	reviews.On("Create", mock.Anything, listingID, user.ID, 5, "great stay").
		Return(&models.Review{ID: uuid.New(), ListingID: listingID, AuthorID: user.ID, Rating: 5, Comment: "great stay"}, nil)

	app, token := newReviewApp(t, user, reviews, listings)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/listings/"+listingID.String()+"/reviews", dto.CreateReviewRequest{
		Review: dto.ReviewPayload{Rating: 5, Comment: "great stay"},
	}, map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusCreated, rec.Code)
	reviews.AssertExpectations(t)
}

func TestReviewHandler_Create_ListingNotFound(t *testing.T) {
	user := &models.User{ID: uuid.New(), ExternalID: "user_abc123"}
	reviews := new(testutil.MockReviewService)
	listings := new(testutil.MockListingService)

	listingID := uuid.New()
	listings.On("GetByID", mock.Anything, listingID).Return(nil, services.ErrListingNotFound)

	app, token := newReviewApp(t, user, reviews, listings)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/listings/"+listingID.String()+"/reviews", dto.CreateReviewRequest{
		Review: dto.ReviewPayload{Rating: 4, Comment: "nice"},
	}, map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewHandler_Create_InvalidRating(t *testing.T) {
	user := &models.User{ID: uuid.New(), ExternalID: "user_abc123"}
	reviews := new(testutil.MockReviewService)
	listings := new(testutil.MockListingService)

	listingID := uuid.New()
	listings.On("GetByID", mock.Anything, listingID).Return(&models.Listing{ID: listingID}, nil)

	app, token := newReviewApp(t, user, reviews, listings)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/listings/"+listingID.String()+"/reviews", dto.CreateReviewRequest{
		Review: dto.ReviewPayload{Rating: 6, Comment: "too good"},
	}, map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewHandler_Create_EmptyComment(t *testing.T) {
	user := &models.User{ID: uuid.New(), ExternalID: "user_abc123"}
	reviews := new(testutil.MockReviewService)
	listings := new(testutil.MockListingService)

	listingID := uuid.New()
	listings.On("GetByID", mock.Anything, listingID).Return(&models.Listing{ID: listingID}, nil)

	app, token := newReviewApp(t, user, reviews, listings)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/listings/"+listingID.String()+"/reviews", dto.CreateReviewRequest{
		Review: dto.ReviewPayload{Rating: 3},
	}, map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewHandler_Delete_AuthorCanDelete(t *testing.T) {
	user := &models.User{ID: uuid.New(), ExternalID: "user_abc123"}
	reviews := new(testutil.MockReviewService)
	listings := new(testutil.MockListingService)

	listingID := uuid.New()
	reviewID := uuid.New()
	reviews.On("GetByID", mock.Anything, reviewID).
		Return(&models.Review{ID: reviewID, ListingID: listingID, AuthorID: user.ID}, nil)
	reviews.On("Delete", mock.Anything, reviewID).Return(nil)

	app, token := newReviewApp(t, user, reviews, listings)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.DELETE("/listings/"+listingID.String()+"/reviews/"+reviewID.String(),
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusOK, rec.Code)
	reviews.AssertExpectations(t)
}

func TestReviewHandler_Delete_NonAuthorForbidden(t *testing.T) {
	user := &models.User{ID: uuid.New(), ExternalID: "user_abc123", Role: models.RoleUser}
	reviews := new(testutil.MockReviewService)
	listings := new(testutil.MockListingService)

	listingID := uuid.New()
	reviewID := uuid.New()
	reviews.On("GetByID", mock.Anything, reviewID).
		Return(&models.Review{ID: reviewID, ListingID: listingID, AuthorID: uuid.New()}, nil)

	app, token := newReviewApp(t, user, reviews, listings)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.DELETE("/listings/"+listingID.String()+"/reviews/"+reviewID.String(),
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReviewHandler_Delete_WrongListingIs404(t *testing.T) {
	user := &models.User{ID: uuid.New(), ExternalID: "user_abc123"}
	reviews := new(testutil.MockReviewService)
	listings := new(testutil.MockListingService)

	reviewID := uuid.New()
	reviews.On("GetByID", mock.Anything, reviewID).
		Return(&models.Review{ID: reviewID, ListingID: uuid.New(), AuthorID: user.ID}, nil)

	app, token := newReviewApp(t, user, reviews, listings)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.DELETE("/listings/"+uuid.NewString()+"/reviews/"+reviewID.String(),
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
