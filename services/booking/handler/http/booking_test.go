package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/services/booking/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, target, body string, actor *models.Actor, paramValue string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	request := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)
	if paramValue != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramValue)
	}
	if actor != nil {
		c.Set("user_id", actor.UserID)
		c.Set("user_role", actor.Role)
	}
	return c, recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestNewBookingHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockBookingUC(ctrl)
	handler := NewBookingHandler(mockUC)

	assert.NotNil(t, handler)
	assert.Equal(t, mockUC, handler.bookingUC)
}

func TestBookingHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name        string
		busy        bool
		wantMessage string
	}{
		{name: "free truck", busy: false, wantMessage: "Booking created"},
		{name: "busy truck", busy: true, wantMessage: "Booking created, the truck already has other active bookings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockBookingUC(ctrl)
			handler := NewBookingHandler(mockUC)

			actor := models.Actor{UserID: uuid.New(), Role: models.RoleCustomer}
			truckID := uuid.New()
			b := &models.Booking{ID: uuid.New(), TruckID: truckID, Status: models.BookingStatusPending}

			mockUC.EXPECT().CreateBooking(gomock.Any(), actor, gomock.Any()).DoAndReturn(
				func(_ interface{}, _ models.Actor, req models.CreateBookingRequest) (*models.CreateBookingResult, error) {
					assert.Equal(t, truckID, req.TruckID)
					assert.Equal(t, 8.0, req.Cargo.WeightKg)
					require.NotNil(t, req.Origin.Coordinates)
					return &models.CreateBookingResult{Booking: b, TruckBusy: tt.busy}, nil
				})

			body := `{"truck_id":"` + truckID.String() + `",
				"origin":{"address":"A","coordinates":{"latitude":-6.2,"longitude":106.8}},
				"destination":{"address":"B"},
				"cargo":{"type":"boxes","weight_kg":8}}`
			c, recorder := newContext(http.MethodPost, "/bookings", body, &actor, "")

			err := handler.CreateBooking(c)

			assert.NoError(t, err)
			assert.Equal(t, http.StatusCreated, recorder.Code)
			response := decode(t, recorder)
			assert.Equal(t, tt.wantMessage, response["message"])
			data := response["data"].(map[string]interface{})
			assert.Equal(t, tt.busy, data["truck_busy"])
		})
	}
}

func TestBookingHandler_CreateBooking_Errors(t *testing.T) {
	actor := models.Actor{UserID: uuid.New(), Role: models.RoleCustomer}

	tests := []struct {
		name     string
		actor    *models.Actor
		body     string
		ucErr    error
		wantCode int
	}{
		{name: "unauthenticated", actor: nil, body: `{}`, wantCode: http.StatusUnauthorized},
		{name: "bad body", actor: &actor, body: `{`, wantCode: http.StatusBadRequest},
		{name: "overweight", actor: &actor, body: `{}`, ucErr: apperror.ValidationError{Field: "cargo.weight_kg"}, wantCode: http.StatusBadRequest},
		{name: "truck unavailable", actor: &actor, body: `{}`, ucErr: apperror.ConflictError{Resource: "truck"}, wantCode: http.StatusConflict},
		{name: "unknown truck", actor: &actor, body: `{}`, ucErr: apperror.NotFoundError{Resource: "truck"}, wantCode: http.StatusNotFound},
		{name: "geocoder down", actor: &actor, body: `{}`, ucErr: apperror.DependencyError{Dependency: "geocoder"}, wantCode: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockBookingUC(ctrl)
			handler := NewBookingHandler(mockUC)
			if tt.ucErr != nil {
				mockUC.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.ucErr)
			}

			c, recorder := newContext(http.MethodPost, "/bookings", tt.body, tt.actor, "")

			err := handler.CreateBooking(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestBookingHandler_ListBookings_ParsesStatuses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockBookingUC(ctrl)
	handler := NewBookingHandler(mockUC)

	actor := models.Actor{UserID: uuid.New(), Role: models.RoleTrucker}
	mockUC.EXPECT().
		ListBookings(gomock.Any(), actor, []models.BookingStatus{models.BookingStatusPending, models.BookingStatusInTransit}).
		Return([]*models.Booking{{ID: uuid.New()}}, nil)

	c, recorder := newContext(http.MethodGet, "/bookings?status=pending,%20in-transit,", "", &actor, "")

	err := handler.ListBookings(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, decode(t, recorder)["data"], 1)
}

func TestBookingHandler_GetBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockBookingUC(ctrl)
	handler := NewBookingHandler(mockUC)

	actor := models.Actor{UserID: uuid.New(), Role: models.RoleCustomer}
	id := uuid.New()
	mockUC.EXPECT().GetBooking(gomock.Any(), id, actor).Return(nil, apperror.AuthorizationError{Action: "view booking"})

	c, recorder := newContext(http.MethodGet, "/", "", &actor, id.String())

	assert.NoError(t, handler.GetBooking(c))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	c, recorder = newContext(http.MethodGet, "/", "", &actor, "nope")
	assert.NoError(t, handler.GetBooking(c))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestBookingHandler_EditBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockBookingUC(ctrl)
	handler := NewBookingHandler(mockUC)

	actor := models.Actor{UserID: uuid.New(), Role: models.RoleCustomer}
	id := uuid.New()
	mockUC.EXPECT().EditBooking(gomock.Any(), id, actor, gomock.Any()).DoAndReturn(
		func(_ interface{}, _ uuid.UUID, _ models.Actor, req models.EditBookingRequest) (*models.Booking, error) {
			require.NotNil(t, req.Cargo)
			assert.Nil(t, req.Origin)
			assert.Equal(t, 5.0, req.Cargo.WeightKg)
			return &models.Booking{ID: id}, nil
		})

	c, recorder := newContext(http.MethodPatch, "/", `{"cargo":{"type":"boxes","weight_kg":5}}`, &actor, id.String())

	assert.NoError(t, handler.EditBooking(c))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestBookingHandler_TransitionStatus(t *testing.T) {
	tests := []struct {
		name     string
		result   *models.TransitionResult
		ucErr    error
		wantCode int
	}{
		{
			name:     "confirmed",
			result:   &models.TransitionResult{Booking: &models.Booking{Status: models.BookingStatusConfirmed}},
			wantCode: http.StatusOK,
		},
		{
			name: "cancelled with manual refund",
			result: &models.TransitionResult{
				Booking:                    &models.Booking{Status: models.BookingStatusCancelled},
				ManualInterventionRequired: true,
				Warnings:                   []string{"refund: payment requires manual processing"},
			},
			wantCode: http.StatusAccepted,
		},
		{
			name:     "invalid edge",
			ucErr:    apperror.InvalidTransition("completed", "pending"),
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockBookingUC(ctrl)
			handler := NewBookingHandler(mockUC)

			actor := models.Actor{UserID: uuid.New(), Role: models.RoleTrucker}
			id := uuid.New()
			mockUC.EXPECT().
				TransitionStatus(gomock.Any(), id, actor, models.TransitionRequest{Status: models.BookingStatusCancelled, Reason: "flat tyre"}).
				Return(tt.result, tt.ucErr)

			c, recorder := newContext(http.MethodPost, "/", `{"status":"cancelled","reason":"flat tyre"}`, &actor, id.String())

			assert.NoError(t, handler.TransitionStatus(c))
			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestBookingHandler_RecordTracking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockBookingUC(ctrl)
	handler := NewBookingHandler(mockUC)

	actor := models.Actor{UserID: uuid.New(), Role: models.RoleTrucker}
	id := uuid.New()
	mockUC.EXPECT().
		RecordTracking(gomock.Any(), id, actor, models.TrackingUpdate{Latitude: 1.35, Longitude: 103.8}).
		Return(nil, apperror.ValidationError{Field: "location", Err: apperror.ErrOutOfBounds})

	c, recorder := newContext(http.MethodPost, "/", `{"latitude":1.35,"longitude":103.8}`, &actor, id.String())

	assert.NoError(t, handler.RecordTracking(c))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestBookingHandler_GetSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockBookingUC(ctrl)
	handler := NewBookingHandler(mockUC)

	actor := models.Actor{UserID: uuid.New(), Role: models.RoleTrucker}
	seq := []models.SequencedBooking{
		{Position: 1, Booking: &models.Booking{ID: uuid.New()}},
		{Position: 2, Booking: &models.Booking{ID: uuid.New()}},
	}
	mockUC.EXPECT().ListActiveBookingsSequenced(gomock.Any(), actor.UserID, actor).Return(seq, nil)

	c, recorder := newContext(http.MethodGet, "/", "", &actor, actor.UserID.String())

	assert.NoError(t, handler.GetSequence(c))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, decode(t, recorder)["data"], 2)
}

func TestBookingHandler_GetTruckActivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockBookingUC(ctrl)
	handler := NewBookingHandler(mockUC)

	actor := models.Actor{UserID: uuid.New(), Role: models.RoleTrucker}
	truckID := uuid.New()
	mockUC.EXPECT().TruckActivity(gomock.Any(), truckID, actor, 20).
		Return([]models.ActivityEntry{{ID: "1", Action: "booking_created"}}, nil)

	c, recorder := newContext(http.MethodGet, "/?limit=20", "", &actor, truckID.String())
	assert.NoError(t, handler.GetTruckActivity(c))
	assert.Equal(t, http.StatusOK, recorder.Code)

	c, recorder = newContext(http.MethodGet, "/?limit=many", "", &actor, truckID.String())
	assert.NoError(t, handler.GetTruckActivity(c))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
