package user

import (
	"net/http"

	"denta/infras/otel"
	"denta/internal/domains/user/model/dto"
	"denta/internal/domains/user/service"
	"denta/shared/constant"
	gDto "denta/shared/dto"
	"denta/shared/failure"
	"denta/shared/validator"
	"denta/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Put("/{email}", handler.UpsertUser)
		routerGroup.Get("/", handler.GetUsers)
		routerGroup.Get("/admin/{email}", handler.CheckIsAdmin)
		routerGroup.Patch("/{id}/admin", handler.PromoteToAdmin)
	})
}

// UpsertUser registers an email on first sign-in and returns an access token.
// @Summary Upsert a user
// @Description Create the user record on first sign-in, or re-issue a token for a known email.
// @Tags User
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Param request body dto.UpsertUserRequest true "Upsert User Request"
// @Success 200 {object} response.Data[dto.UpsertUserResponse] "User and access token"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{email} [put]
func (handler *Handler) UpsertUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertUser")
	defer scope.End()

	email := chi.URLParam(request, constant.RequestParamEmail)
	if err := validator.ValidateVar(email, "required,email"); err != nil {
		scope.TraceError(err)

		response.WithError(writer, failure.BadRequestFromString("invalid email"))

		return
	}

	req := dto.UpsertUserRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Upsert(ctx, email, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert user")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetUsers retrieves all users.
// @Summary Get all users
// @Description Retrieve all users with pagination. Admin only.
// @Tags User
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetUsersResponse] "List of users"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CheckIsAdmin reports whether the email belongs to an admin.
// @Summary Check admin role
// @Description Answer whether the given email holds the admin role.
// @Tags User
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} response.Data[dto.IsAdminResponse] "Admin flag"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/admin/{email} [get]
func (handler *Handler) CheckIsAdmin(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIsAdmin")
	defer scope.End()

	email := chi.URLParam(request, constant.RequestParamEmail)
	if err := validator.ValidateVar(email, "required,email"); err != nil {
		scope.TraceError(err)

		response.WithError(writer, failure.BadRequestFromString("invalid email"))

		return
	}

	res, err := handler.service.IsAdmin(ctx, email)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check admin role")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// PromoteToAdmin raises the target user to admin.
// @Summary Promote a user to admin
// @Description Promote the target user to the admin role. Idempotent. Admin only.
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message "User promoted"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id}/admin [patch]
// @Security BearerAuth
func (handler *Handler) PromoteToAdmin(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PromoteToAdmin")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.PromoteToAdmin(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to promote user")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "User promoted to admin")
}
