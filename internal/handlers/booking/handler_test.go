package booking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"denta/config"
	kafkaMocks "denta/infras/kafka/mocks"
	mailerMocks "denta/infras/mailer/mocks"
	"denta/infras/otel/mocks"
	bookingMocks "denta/internal/domains/booking/mocks"
	"denta/internal/domains/booking/model"
	"denta/internal/domains/booking/service"
	bookingHandler "denta/internal/handlers/booking"
	"denta/shared/constant"
)

type handlerFixture struct {
	repo   *bookingMocks.MockBooking
	mailer *mailerMocks.MockEmailSender
	events *kafkaMocks.MockClient
}

// newBookingRouter mounts the booking routes behind a middleware that binds
// the caller identity the way the auth middleware does after token validation.
func newBookingRouter(t *testing.T, callerEmail, callerRole string) (*chi.Mux, handlerFixture) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockMailer := mailerMocks.NewMockEmailSender(ctrl)
	mockEvents := kafkaMocks.NewMockClient(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel(), mockMailer, mockEvents)
	handler := bookingHandler.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := context.WithValue(request.Context(), constant.ContextKeyUserEmail, callerEmail)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, callerRole)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	})
	handler.Router(router)

	return router, handlerFixture{repo: mockRepo, mailer: mockMailer, events: mockEvents}
}

func bookingBody(patientEmail string) string {
	return `{
		"treatment_name": "Braces",
		"slot": "10am",
		"patient_name": "Jane Doe",
		"patient_email": "` + patientEmail + `",
		"price": 300,
		"appointment_date": "2024-01-05"
	}`
}

func TestHandler_GetMyBookings(t *testing.T) {
	t.Run("email mismatch is refused", func(t *testing.T) {
		router, _ := newBookingRouter(t, "jane@example.com", constant.RolePatient)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/?email=mallory@example.com", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("own email is served", func(t *testing.T) {
		router, f := newBookingRouter(t, "jane@example.com", constant.RolePatient)

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{
				{ID: "b-1", TreatmentName: "Braces", PatientEmail: "jane@example.com"},
			}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/?email=jane@example.com", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "b-1")
	})
}

func TestHandler_CreateBooking(t *testing.T) {
	t.Run("booking for another patient is refused", func(t *testing.T) {
		router, _ := newBookingRouter(t, "jane@example.com", constant.RolePatient)

		req := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(bookingBody("mallory@example.com")))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("own booking is admitted", func(t *testing.T) {
		router, f := newBookingRouter(t, "jane@example.com", constant.RolePatient)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			Return(nil)

		f.events.EXPECT().
			SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(bookingBody("jane@example.com")))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		time.Sleep(10 * time.Millisecond)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate booking is refused with 409", func(t *testing.T) {
		router, f := newBookingRouter(t, "jane@example.com", constant.RolePatient)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		req := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(bookingBody("jane@example.com")))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"acknowledged":false`)
	})
}

func TestHandler_GetBookingByID(t *testing.T) {
	braces := model.Booking{ID: "b-1", TreatmentName: "Braces", PatientEmail: "jane@example.com"}

	t.Run("owner reads their booking", func(t *testing.T) {
		router, f := newBookingRouter(t, "jane@example.com", constant.RolePatient)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(braces, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/b-1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("another patient is refused", func(t *testing.T) {
		router, f := newBookingRouter(t, "mallory@example.com", constant.RolePatient)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(braces, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/b-1", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin reads any booking", func(t *testing.T) {
		router, f := newBookingRouter(t, "root@example.com", constant.RoleAdmin)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(braces, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/b-1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
