package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinebook/internal/data/entity"
	"cinebook/internal/dto/request"
	"cinebook/internal/dto/response"
	"cinebook/internal/usecase"
	"cinebook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mock BookingService ---

type mockBookingService struct {
	usecase.BookingService
	CreateBookingFn func(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingDetailResponse, error)
	GetBookingFn    func(ctx context.Context, bookingID int64, userID uuid.UUID, isAdmin bool) (*response.BookingDetailResponse, error)
	CancelBookingFn func(ctx context.Context, bookingID int64, userID uuid.UUID, isAdmin bool) (*response.BookingResponse, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingDetailResponse, error) {
	return m.CreateBookingFn(ctx, userID, req)
}

func (m *mockBookingService) GetBooking(ctx context.Context, bookingID int64, userID uuid.UUID, isAdmin bool) (*response.BookingDetailResponse, error) {
	return m.GetBookingFn(ctx, bookingID, userID, isAdmin)
}

func (m *mockBookingService) CancelBooking(ctx context.Context, bookingID int64, userID uuid.UUID, isAdmin bool) (*response.BookingResponse, error) {
	return m.CancelBookingFn(ctx, bookingID, userID, isAdmin)
}

// bookingRouter mounts the handler the way the app does, with the caller
// already authenticated.
func bookingRouter(svc usecase.BookingService, userID uuid.UUID, role string) http.Handler {
	h := NewBookingHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(utils.SetUserContext(req.Context(), userID, role)))
		})
	})
	r.Post("/api/bookings", h.CreateBooking)
	r.Get("/api/bookings/{id}", h.GetBooking)
	r.Post("/api/bookings/{id}/cancel", h.CancelBooking)
	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestBookingHandler_CreateBooking(t *testing.T) {
	userID := uuid.New()
	svc := &mockBookingService{
		CreateBookingFn: func(ctx context.Context, gotUser uuid.UUID, req *request.CreateBookingRequest) (*response.BookingDetailResponse, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, int64(1), req.ShowtimeID)
			assert.Equal(t, []int64{1, 2}, req.SeatIDs)
			assert.Equal(t, map[int64]int{1: 2}, req.Food)
			return &response.BookingDetailResponse{
				BookingResponse: response.BookingResponse{ID: 101, TotalAmount: 3400, Status: entity.BookingStatusConfirmed},
			}, nil
		},
	}

	rec := do(bookingRouter(svc, userID, "customer"), http.MethodPost, "/api/bookings",
		`{"showtime_id":1,"seat_ids":[1,2],"food":{"1":2},"payment_method":"card"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Status bool                           `json:"status"`
		Data   response.BookingDetailResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Status)
	assert.Equal(t, int64(101), body.Data.ID)
	assert.Equal(t, int64(3400), body.Data.TotalAmount)
}

func TestBookingHandler_CreateBooking_BadBody(t *testing.T) {
	svc := &mockBookingService{
		CreateBookingFn: func(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingDetailResponse, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	router := bookingRouter(svc, uuid.New(), "customer")

	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"showtime_id":1,"seat_ids":[1],"coupon":"FREE"}`},
		{"malformed", `{"showtime_id":`},
		{"empty", ``},
		{"two objects", `{"showtime_id":1}{"showtime_id":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPost, "/api/bookings", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, utils.CodeInvalidBody, errorBody(t, rec).Code)
		})
	}
}

func TestBookingHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"seat taken", utils.NewConflictError(utils.CodeSeatAlreadyBooked, "Seat A1 (id 1) is already booked"), http.StatusConflict, utils.CodeSeatAlreadyBooked},
		{"missing showtime", utils.NewNotFoundError(utils.CodeShowtimeNotFound, "Showtime not found"), http.StatusNotFound, utils.CodeShowtimeNotFound},
		{"bad payment", utils.NewInvalidError(utils.CodeInvalidPayment, "bad"), http.StatusBadRequest, utils.CodeInvalidPayment},
		{"unexpected", errors.New("pq: connection refused to 10.0.0.5"), http.StatusInternalServerError, utils.CodeInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				CreateBookingFn: func(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingDetailResponse, error) {
					return nil, tt.err
				},
			}

			rec := do(bookingRouter(svc, uuid.New(), "customer"), http.MethodPost, "/api/bookings",
				`{"showtime_id":1,"seat_ids":[1],"payment_method":"card"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := errorBody(t, rec)
			assert.False(t, body.Status)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotContains(t, body.Error, "10.0.0.5")
		})
	}
}

func TestBookingHandler_GetBooking_PassesRole(t *testing.T) {
	var gotAdmin bool
	svc := &mockBookingService{
		GetBookingFn: func(ctx context.Context, bookingID int64, userID uuid.UUID, isAdmin bool) (*response.BookingDetailResponse, error) {
			assert.Equal(t, int64(42), bookingID)
			gotAdmin = isAdmin
			return &response.BookingDetailResponse{BookingResponse: response.BookingResponse{ID: bookingID}}, nil
		},
	}

	rec := do(bookingRouter(svc, uuid.New(), utils.RoleAdmin), http.MethodGet, "/api/bookings/42", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotAdmin)

	rec = do(bookingRouter(svc, uuid.New(), "customer"), http.MethodGet, "/api/bookings/42", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, gotAdmin)
}

func TestBookingHandler_InvalidID(t *testing.T) {
	svc := &mockBookingService{
		CancelBookingFn: func(ctx context.Context, bookingID int64, userID uuid.UUID, isAdmin bool) (*response.BookingResponse, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	router := bookingRouter(svc, uuid.New(), "customer")

	for _, id := range []string{"abc", "0", "-3"} {
		rec := do(router, http.MethodPost, "/api/bookings/"+id+"/cancel", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
		assert.Equal(t, utils.CodeInvalidID, errorBody(t, rec).Code, id)
	}
}

func TestBookingHandler_CancelBooking_AlreadyCancelled(t *testing.T) {
	svc := &mockBookingService{
		CancelBookingFn: func(ctx context.Context, bookingID int64, userID uuid.UUID, isAdmin bool) (*response.BookingResponse, error) {
			return nil, utils.NewConflictError(utils.CodeBookingCancelled, "Booking is already cancelled")
		},
	}

	rec := do(bookingRouter(svc, uuid.New(), "customer"), http.MethodPost, "/api/bookings/7/cancel", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := errorBody(t, rec)
	assert.Equal(t, utils.CodeBookingCancelled, body.Code)
	assert.Equal(t, "Booking is already cancelled", body.Error)
}

func TestBookingHandler_RequiresUser(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.CreateBooking(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
