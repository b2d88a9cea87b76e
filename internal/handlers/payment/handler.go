package payment

import (
	"net/http"

	"denta/infras/otel"
	"denta/internal/domains/payment/model/dto"
	"denta/internal/domains/payment/service"
	"denta/shared/constant"
	"denta/shared/validator"
	"denta/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.ReconcilePayment)
	})
}

// ReconcilePayment records a completed charge and marks its booking paid.
// @Summary Reconcile a payment
// @Description Record a charge that succeeded at the payment processor and flip the booking to paid. Idempotent by transaction reference.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.ReconcilePaymentRequest true "Reconcile Payment Request"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment recorded"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments [post]
// @Security BearerAuth
func (handler *Handler) ReconcilePayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReconcilePayment")
	defer scope.End()

	req := dto.ReconcilePaymentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Reconcile(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile payment")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
