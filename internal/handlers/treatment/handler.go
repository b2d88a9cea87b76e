package treatment

import (
	"net/http"

	"denta/infras/otel"
	"denta/internal/domains/treatment/model/dto"
	"denta/internal/domains/treatment/service"
	"denta/shared/constant"
	gDto "denta/shared/dto"
	"denta/shared/validator"
	"denta/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Treatment
	otel    otel.Otel
}

func New(service service.Treatment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/treatments", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTreatments)
		routerGroup.Post("/", handler.CreateTreatment)
		routerGroup.Get("/availability", handler.GetAvailability)
	})
}

// GetTreatments retrieves the treatment catalog.
// @Summary Get all treatments
// @Description Retrieve the treatment catalog with pagination.
// @Tags Treatment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetTreatmentsResponse] "List of treatments"
// @Failure 500 {object} response.Error
// @Router /v1/treatments [get]
func (handler *Handler) GetTreatments(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTreatments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get treatments")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateTreatment seeds a new treatment with its daily slot capacity.
// @Summary Create a treatment
// @Description Create a new treatment with its price and full slot list. Admin only.
// @Tags Treatment
// @Accept json
// @Produce json
// @Param request body dto.CreateTreatmentRequest true "Create Treatment Request"
// @Success 201 {object} response.Message "Treatment created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/treatments [post]
// @Security BearerAuth
func (handler *Handler) CreateTreatment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTreatment")
	defer scope.End()

	req := dto.CreateTreatmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create treatment")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Treatment created successfully")
}

// GetAvailability derives the open slots per treatment for a date.
// @Summary Get slot availability
// @Description Derive the remaining open slots for every treatment on the given date.
// @Tags Treatment
// @Accept json
// @Produce json
// @Param date query string true "Target date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability per treatment"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/treatments/availability [get]
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	date := request.URL.Query().Get(constant.RequestParamDate)

	res, err := handler.service.GetAvailability(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
