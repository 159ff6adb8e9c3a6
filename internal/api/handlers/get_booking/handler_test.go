package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/SBP-CheckoutService/internal/api/middleware"
	"github.com/salonbook/SBP-CheckoutService/internal/service/bookings"
	"github.com/salonbook/SBP-CheckoutService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	booking *models.BookingResponse
	err     error
}

func (s *stubService) GetByID(_ context.Context, _ int64, _ int64) (*models.BookingResponse, error) {
	return s.booking, s.err
}

func serve(t *testing.T, svc BookingService, path, userID string) *httptest.ResponseRecorder {
	t.Helper()
	router := mux.NewRouter()
	router.Handle("/api/v1/bookings/{bookingId}", middleware.Auth(http.HandlerFunc(NewHandler(svc, nopLogger{}).Handle)))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{booking: &models.BookingResponse{
		ID:                 42,
		BookingNumber:      "SB-ABCDEF1234",
		Status:             "confirmed",
		ConvenienceFeePaid: true,
	}}

	rec := serve(t, svc, "/api/v1/bookings/42", "7")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "SB-ABCDEF1234", resp.BookingNumber)
	assert.True(t, resp.ConvenienceFeePaid)
	assert.False(t, resp.ServicePaid)
}

func TestHandle_NotFound(t *testing.T) {
	rec := serve(t, &stubService{err: bookings.ErrBookingNotFound}, "/api/v1/bookings/42", "7")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_AccessDenied(t *testing.T) {
	rec := serve(t, &stubService{err: bookings.ErrAccessDenied}, "/api/v1/bookings/42", "999")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandle_InvalidID(t *testing.T) {
	rec := serve(t, &stubService{}, "/api/v1/bookings/abc", "7")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingUser(t *testing.T) {
	rec := serve(t, &stubService{}, "/api/v1/bookings/42", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
