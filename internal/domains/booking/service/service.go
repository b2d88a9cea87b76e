package service

import (
	"context"
	"errors"
	"fmt"

	"denta/config"
	"denta/infras/kafka"
	"denta/infras/mailer"
	"denta/infras/otel"
	"denta/internal/domains/booking/model"
	"denta/internal/domains/booking/model/dto"
	"denta/internal/domains/booking/repository"
	"denta/shared"
	"denta/shared/constant"
	gDto "denta/shared/dto"
	"denta/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo   repository.Booking
	cfg    *config.Config
	otel   otel.Otel
	mailer mailer.EmailSender
	events kafka.Client
}

func New(repo repository.Booking, cfg *config.Config, otel otel.Otel, mailer mailer.EmailSender, events kafka.Client) Booking {
	return &serviceImpl{
		repo:   repo,
		cfg:    cfg,
		otel:   otel,
		mailer: mailer,
		events: events,
	}
}

// Create admits a booking unless the patient already holds one for the same
// treatment on the same date. The pre-check catches the common case, the
// unique constraint on (patient_email, treatment_name, appointment_date)
// catches the race. Either way the duplicate comes back as a refusal, not an
// error.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	duplicateFilter := duplicateBookingFilter(req.PatientEmail, req.TreatmentName, req.AppointmentDate)

	exists, err := s.repo.Exist(ctx, duplicateFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check for existing booking")

		return res, fmt.Errorf("failed to check for existing booking: %w", err)
	}

	if exists {
		return refusedDuplicate(req), nil
	}

	booking := req.ToModel(user)

	if err = s.repo.Insert(ctx, booking); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			// Concurrent request won the insert between our check and now.
			return refusedDuplicate(req), nil
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	var bookingRes dto.BookingResponse
	bookingRes.FromModel(booking)

	res.Acknowledged = true
	res.Booking = &bookingRes

	go s.notifyBookingCreated(context.WithoutCancel(ctx), booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, failure.Upstream("booking store unavailable") // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, failure.Upstream("booking store unavailable") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, failure.Upstream("booking store unavailable") // nolint:wrapcheck
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

// notifyBookingCreated sends the confirmation email and emits the domain
// event. Both are best effort, a failure is logged and the booking stands.
func (s *serviceImpl) notifyBookingCreated(ctx context.Context, booking model.Booking) {
	message := mailer.EmailMessage{
		To:      booking.PatientEmail,
		ToName:  booking.PatientName,
		Subject: fmt.Sprintf("Your %s appointment is confirmed", booking.TreatmentName),
		Body: fmt.Sprintf("Your %s appointment is confirmed for %s at %s. Please arrive 15 minutes early.",
			booking.TreatmentName, booking.AppointmentDate, booking.Slot),
	}

	if err := s.mailer.Send(ctx, message); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to send booking confirmation email")
	}

	event := kafka.Message{
		Key:   booking.ID,
		Value: booking,
	}

	if err := s.events.SendMessages(ctx, constant.EventTopicBookingCreated, event); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to emit booking created event")
	}
}

func refusedDuplicate(req dto.CreateBookingRequest) dto.CreateBookingResponse {
	return dto.CreateBookingResponse{
		Acknowledged: false,
		Message:      fmt.Sprintf("you already have a %s appointment on %s", req.TreatmentName, req.AppointmentDate),
	}
}

func duplicateBookingFilter(email, treatment, date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPatientEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldTreatmentName,
				Operator: gDto.FilterOperatorEq,
				Value:    treatment,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldAppointmentDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    model.TableName,
			},
		},
	}
}
