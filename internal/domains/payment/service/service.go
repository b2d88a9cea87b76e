package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"denta/config"
	"denta/infras/kafka"
	"denta/infras/otel"
	"denta/infras/postgres"
	bookingModel "denta/internal/domains/booking/model"
	bookingRepo "denta/internal/domains/booking/repository"
	"denta/internal/domains/payment/model"
	"denta/internal/domains/payment/model/dto"
	"denta/internal/domains/payment/repository"
	"denta/shared"
	"denta/shared/constant"
	gDto "denta/shared/dto"
	"denta/shared/failure"
	"denta/shared/timezone"
)

type Payment interface {
	Reconcile(ctx context.Context, req dto.ReconcilePaymentRequest) (dto.PaymentResponse, error)
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepo.Booking
	db          *postgres.Connection
	cfg         *config.Config
	otel        otel.Otel
	events      kafka.Client
}

func New(repo repository.Payment, bookingRepo bookingRepo.Booking, db *postgres.Connection, cfg *config.Config, otel otel.Otel, events kafka.Client) Payment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		db:          db,
		cfg:         cfg,
		otel:        otel,
		events:      events,
	}
}

// Reconcile records a charge that succeeded at the payment processor: it
// appends the payment and flips the booking to paid in one transaction, so a
// payment row never exists without its paid booking. Retries with the same
// transaction reference return the already recorded payment untouched.
func (s *serviceImpl) Reconcile(ctx context.Context, req dto.ReconcilePaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reconcile")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	existing, err := s.repo.Get(ctx, transactionFilter(req.TransactionID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check for existing payment")

		return res, fmt.Errorf("failed to check for existing payment: %w", err)
	}

	if existing.ID != constant.Empty {
		log.Info().Str("transactionID", req.TransactionID).Msg("payment already reconciled, returning recorded payment")

		res.FromModel(existing)

		return res, nil
	}

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	payment := req.ToModel(user)

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, payment); err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}

		updatedFields := map[string]any{
			bookingModel.FieldPaid:          true,
			bookingModel.FieldTransactionID: req.TransactionID,
			constant.FieldModifiedAt:        timezone.Now(),
			constant.FieldModifiedBy:        user,
		}

		filter := shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)
		if err := s.bookingRepo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
			return fmt.Errorf("failed to mark booking paid: %w", err)
		}

		return nil
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			// A concurrent reconcile with the same reference won the insert.
			// Converge on the recorded payment instead of failing the loser.
			recorded, getErr := s.repo.Get(ctx, transactionFilter(req.TransactionID))
			if getErr == nil && recorded.ID != constant.Empty {
				log.Info().Str("transactionID", req.TransactionID).Msg("payment reconciled concurrently, returning recorded payment")

				res.FromModel(recorded)

				return res, nil
			}
		}

		log.Error().Err(err).Str("transactionID", req.TransactionID).Msg("payment reconciliation did not complete")

		return res, failure.Inconsistent("payment reconciliation did not complete, retry with the same transaction reference") // nolint:wrapcheck
	}

	res.FromModel(payment)

	go s.emitReconciled(context.WithoutCancel(ctx), payment)

	return res, nil
}

func (s *serviceImpl) emitReconciled(ctx context.Context, payment model.Payment) {
	event := kafka.Message{
		Key:   payment.TransactionID,
		Value: payment,
	}

	if err := s.events.SendMessages(ctx, constant.EventTopicPaymentReconciled, event); err != nil {
		log.Error().Err(err).Str("paymentID", payment.ID).Msg("failed to emit payment reconciled event")
	}
}

func transactionFilter(transactionID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTransactionID,
				Operator: gDto.FilterOperatorEq,
				Value:    transactionID,
				Table:    model.TableName,
			},
		},
	}
}
