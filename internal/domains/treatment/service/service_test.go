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
	"denta/infras/otel/mocks"
	bookingMocks "denta/internal/domains/booking/mocks"
	bookingModel "denta/internal/domains/booking/model"
	treatmentMocks "denta/internal/domains/treatment/mocks"
	"denta/internal/domains/treatment/model"
	"denta/internal/domains/treatment/model/dto"
	"denta/internal/domains/treatment/service"
	cacheMocks "denta/shared/cache/mocks"
	gDto "denta/shared/dto"
	"denta/shared/failure"
)

func newTreatmentService(t *testing.T) (service.Treatment, *treatmentMocks.MockTreatment, *bookingMocks.MockBooking, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := treatmentMocks.NewMockTreatment(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockBookingRepo, mockCache
}

func TestTreatmentService_GetAvailability(t *testing.T) {
	braces := model.Treatment{
		ID:    "t-1",
		Name:  "Braces",
		Price: 300,
		Slots: pq.StringArray{"9am", "10am", "11am"},
	}

	tests := []struct {
		name      string
		date      string
		setupMock func(repo *treatmentMocks.MockTreatment, bookings *bookingMocks.MockBooking)
		wantSlots []string
		wantErr   bool
		wantCode  int
	}{
		{
			name: "one slot booked",
			date: "2024-01-05",
			setupMock: func(repo *treatmentMocks.MockTreatment, bookings *bookingMocks.MockBooking) {
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Treatment{braces}, nil)

				bookings.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any(), bookingModel.FieldTreatmentName, bookingModel.FieldSlot).
					Return([]bookingModel.Booking{
						{TreatmentName: "Braces", Slot: "10am", AppointmentDate: "2024-01-05"},
					}, nil)
			},
			wantSlots: []string{"9am", "11am"},
		},
		{
			name: "no slots booked",
			date: "2024-01-06",
			setupMock: func(repo *treatmentMocks.MockTreatment, bookings *bookingMocks.MockBooking) {
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Treatment{braces}, nil)

				bookings.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any(), bookingModel.FieldTreatmentName, bookingModel.FieldSlot).
					Return([]bookingModel.Booking{}, nil)
			},
			wantSlots: []string{"9am", "10am", "11am"},
		},
		{
			name: "all slots booked",
			date: "2024-01-07",
			setupMock: func(repo *treatmentMocks.MockTreatment, bookings *bookingMocks.MockBooking) {
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Treatment{braces}, nil)

				bookings.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any(), bookingModel.FieldTreatmentName, bookingModel.FieldSlot).
					Return([]bookingModel.Booking{
						{TreatmentName: "Braces", Slot: "9am"},
						{TreatmentName: "Braces", Slot: "10am"},
						{TreatmentName: "Braces", Slot: "11am"},
					}, nil)
			},
			wantSlots: []string{},
		},
		{
			name: "bookings for other treatments do not consume slots",
			date: "2024-01-08",
			setupMock: func(repo *treatmentMocks.MockTreatment, bookings *bookingMocks.MockBooking) {
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Treatment{braces}, nil)

				bookings.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any(), bookingModel.FieldTreatmentName, bookingModel.FieldSlot).
					Return([]bookingModel.Booking{
						{TreatmentName: "Whitening", Slot: "9am"},
					}, nil)
			},
			wantSlots: []string{"9am", "10am", "11am"},
		},
		{
			name:      "invalid date format",
			date:      "05-01-2024",
			setupMock: func(*treatmentMocks.MockTreatment, *bookingMocks.MockBooking) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "treatment store unavailable",
			date: "2024-01-05",
			setupMock: func(repo *treatmentMocks.MockTreatment, _ *bookingMocks.MockBooking) {
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			wantErr:  true,
			wantCode: 502,
		},
		{
			name: "booking store unavailable",
			date: "2024-01-05",
			setupMock: func(repo *treatmentMocks.MockTreatment, bookings *bookingMocks.MockBooking) {
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Treatment{braces}, nil)

				bookings.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any(), bookingModel.FieldTreatmentName, bookingModel.FieldSlot).
					Return(nil, errors.New("connection refused"))
			},
			wantErr:  true,
			wantCode: 502,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockBookingRepo, _ := newTreatmentService(t)
			tt.setupMock(mockRepo, mockBookingRepo)

			res, err := svc.GetAvailability(context.Background(), tt.date)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.date, res.Date)
			assert.Len(t, res.Treatments, 1)
			assert.Equal(t, "Braces", res.Treatments[0].Name)
			assert.Equal(t, tt.wantSlots, res.Treatments[0].Slots)
		})
	}
}

func TestTreatmentService_GetAvailability_EmptyCatalog(t *testing.T) {
	svc, mockRepo, mockBookingRepo, _ := newTreatmentService(t)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Treatment{}, nil)

	mockBookingRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any(), bookingModel.FieldTreatmentName, bookingModel.FieldSlot).
		Return([]bookingModel.Booking{}, nil)

	res, err := svc.GetAvailability(context.Background(), "2024-01-05")

	assert.NoError(t, err)
	assert.Empty(t, res.Treatments)
}

func TestTreatmentService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateTreatmentRequest
		setupMock func(repo *treatmentMocks.MockTreatment, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateTreatmentRequest{
				Name:  "Braces",
				Price: 300,
				Slots: []string{"9am", "10am", "11am"},
			},
			setupMock: func(repo *treatmentMocks.MockTreatment, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "duplicate treatment name",
			req: dto.CreateTreatmentRequest{
				Name:  "Braces",
				Price: 300,
				Slots: []string{"9am"},
			},
			setupMock: func(repo *treatmentMocks.MockTreatment, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: "23505"})
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository error",
			req: dto.CreateTreatmentRequest{
				Name:  "Braces",
				Price: 300,
				Slots: []string{"9am"},
			},
			setupMock: func(repo *treatmentMocks.MockTreatment, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockCache := newTreatmentService(t)
			tt.setupMock(mockRepo, mockCache)

			err := svc.Create(context.Background(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestTreatmentService_GetAll_CacheHit(t *testing.T) {
	svc, _, _, mockCache := newTreatmentService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			res, ok := value.(*dto.GetTreatmentsResponse)
			assert.True(t, ok)
			res.TotalData = 1
			res.Treatments = []dto.TreatmentResponse{{Name: "Braces"}}

			return nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, "Braces", res.Treatments[0].Name)
}

func TestTreatmentService_GetAll_CacheMiss(t *testing.T) {
	svc, mockRepo, _, mockCache := newTreatmentService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Treatment{
			{ID: "t-1", Name: "Braces", Price: 300, Slots: pq.StringArray{"9am"}},
			{ID: "t-2", Name: "Whitening", Price: 150, Slots: pq.StringArray{"1pm"}},
		}, nil)

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).
		Return(nil).
		AnyTimes()

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Len(t, res.Treatments, 2)
}
