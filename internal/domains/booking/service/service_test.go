package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"denta/config"
	kafkaMocks "denta/infras/kafka/mocks"
	mailerMocks "denta/infras/mailer/mocks"
	"denta/infras/otel/mocks"
	bookingMocks "denta/internal/domains/booking/mocks"
	"denta/internal/domains/booking/model"
	"denta/internal/domains/booking/model/dto"
	"denta/internal/domains/booking/service"
	"denta/shared/constant"
	gDto "denta/shared/dto"
	"denta/shared/failure"
)

type bookingFixture struct {
	svc    service.Booking
	repo   *bookingMocks.MockBooking
	mailer *mailerMocks.MockEmailSender
	events *kafkaMocks.MockClient
}

func newBookingService(t *testing.T) bookingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockMailer := mailerMocks.NewMockEmailSender(ctrl)
	mockEvents := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}

	return bookingFixture{
		svc:    service.New(mockRepo, cfg, mocks.NewOtel(), mockMailer, mockEvents),
		repo:   mockRepo,
		mailer: mockMailer,
		events: mockEvents,
	}
}

func bookingRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		TreatmentName:   "Braces",
		Slot:            "10am",
		PatientName:     "Jane Doe",
		PatientEmail:    "jane@example.com",
		Price:           300,
		AppointmentDate: "2024-01-05",
	}
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name             string
		setupMock        func(f bookingFixture)
		wantErr          bool
		wantAcknowledged bool
	}{
		{
			name: "successful booking",
			setupMock: func(f bookingFixture) {
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
					SendMessages(gomock.Any(), constant.EventTopicBookingCreated, gomock.Any()).
					Return(nil)
			},
			wantAcknowledged: true,
		},
		{
			name: "duplicate caught by pre-check",
			setupMock: func(f bookingFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantAcknowledged: false,
		},
		{
			name: "duplicate caught by unique constraint",
			setupMock: func(f bookingFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: "23505"})
			},
			wantAcknowledged: false,
		},
		{
			name: "existence check fails",
			setupMock: func(f bookingFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "insert fails",
			setupMock: func(f bookingFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingService(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "jane@example.com")
			res, err := f.svc.Create(ctx, bookingRequest())

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantAcknowledged, res.Acknowledged)

			if tt.wantAcknowledged {
				assert.NotNil(t, res.Booking)
				assert.Equal(t, "Braces", res.Booking.TreatmentName)
				assert.False(t, res.Booking.Paid)
			} else {
				assert.Nil(t, res.Booking)
				assert.Contains(t, res.Message, "Braces")
				assert.Contains(t, res.Message, "2024-01-05")
			}
		})
	}
}

func TestBookingService_Create_NotificationFailureDoesNotFailBooking(t *testing.T) {
	f := newBookingService(t)

	f.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	f.mailer.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(errors.New("sendgrid unavailable"))

	f.events.EXPECT().
		SendMessages(gomock.Any(), constant.EventTopicBookingCreated, gomock.Any()).
		Return(errors.New("broker unavailable"))

	res, err := f.svc.Create(context.Background(), bookingRequest())

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.True(t, res.Acknowledged)
}

func TestBookingService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f bookingFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "booking found",
			setupMock: func(f bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "b-1", TreatmentName: "Braces"}, nil)
			},
		},
		{
			name: "booking not found",
			setupMock: func(f bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "booking store unavailable",
			setupMock: func(f bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("connection refused"))
			},
			wantErr:  true,
			wantCode: 502,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingService(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), "b-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "b-1", res.ID)
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	f := newBookingService(t)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{{ID: "b-1", TreatmentName: "Braces"}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
}

func TestBookingService_GetAll_StoreUnavailable(t *testing.T) {
	f := newBookingService(t)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(0, errors.New("connection refused"))

	_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})

	assert.Error(t, err)
	assert.Equal(t, 502, failure.GetCode(err))
}
