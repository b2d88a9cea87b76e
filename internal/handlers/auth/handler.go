package auth

import (
	"net/http"

	"denta/infras/otel"
	"denta/internal/domains/auth/model/dto"
	"denta/internal/domains/auth/service"
	"denta/shared/constant"
	"denta/shared/validator"
	"denta/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/token", handler.IssueToken)
	})
}

// IssueToken exchanges a registered email for an access token.
// @Summary Issue an access token
// @Description Issue a signed access token for a registered email.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.IssueTokenRequest true "Issue Token Request"
// @Success 200 {object} response.Data[dto.TokenResponse] "Access token"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/token [post]
func (handler *Handler) IssueToken(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IssueToken")
	defer scope.End()

	req := dto.IssueTokenRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.IssueToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to issue token")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
