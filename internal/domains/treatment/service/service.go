package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"denta/config"
	"denta/infras/otel"
	bookingModel "denta/internal/domains/booking/model"
	bookingRepo "denta/internal/domains/booking/repository"
	"denta/internal/domains/treatment/model"
	"denta/internal/domains/treatment/model/dto"
	"denta/internal/domains/treatment/repository"
	"denta/shared"
	"denta/shared/cache"
	"denta/shared/constant"
	gDto "denta/shared/dto"
	"denta/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllTreatment = "treatment:gets"
	cacheCountTreatment  = "treatment:count"
)

type Treatment interface {
	Create(ctx context.Context, req dto.CreateTreatmentRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTreatmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetAvailability(ctx context.Context, date string) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo        repository.Treatment
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Treatment, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Treatment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTreatmentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("treatment name already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create treatment")

		return fmt.Errorf("failed to create treatment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTreatment)
		shared.InvalidateCaches(c, s.cache, cacheCountTreatment)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTreatmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTreatment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for treatments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count treatments")

		return res, fmt.Errorf("failed to count treatments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get treatments")

		return res, failure.Upstream("treatment store unavailable") // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save treatments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count treatments")

		return res, failure.Upstream("treatment store unavailable") // nolint:wrapcheck
	}

	return res, nil
}

// GetAvailability derives the open slots for every treatment on the given
// date: the treatment's full slot list minus the slots already booked. The
// result is computed fresh on every call and deliberately never cached, a
// stale answer here would invite double bookings.
func (s *serviceImpl) GetAvailability(ctx context.Context, date string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = time.Parse(constant.AppointmentDateFormat, date); err != nil {
		return res, failure.BadRequestFromString("date must be in YYYY-MM-DD format") // nolint:wrapcheck
	}

	treatments, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get treatments")

		return res, failure.Upstream("treatment store unavailable") // nolint:wrapcheck
	}

	dateFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldAppointmentDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    bookingModel.TableName,
			},
		},
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, dateFilter,
		bookingModel.FieldTreatmentName, bookingModel.FieldSlot)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, failure.Upstream("booking store unavailable") // nolint:wrapcheck
	}

	booked := make(map[string]map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if booked[b.TreatmentName] == nil {
			booked[b.TreatmentName] = make(map[string]struct{})
		}
		booked[b.TreatmentName][b.Slot] = struct{}{}
	}

	res.Date = date
	res.Treatments = make([]dto.TreatmentAvailability, len(treatments))
	for i, t := range treatments {
		res.Treatments[i] = dto.TreatmentAvailability{
			ID:    t.ID,
			Name:  t.Name,
			Price: t.Price,
			Slots: remainingSlots(t, booked[t.Name]),
		}
	}

	return res, nil
}

// remainingSlots keeps the treatment's declared slot order.
func remainingSlots(t model.Treatment, taken map[string]struct{}) []string {
	remaining := make([]string, 0, len(t.Slots))
	for _, slot := range t.Slots {
		if _, ok := taken[slot]; ok {
			continue
		}
		remaining = append(remaining, slot)
	}

	return remaining
}
