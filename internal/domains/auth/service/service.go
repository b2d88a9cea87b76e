package service

import (
	"context"
	"fmt"

	"denta/config"
	"denta/infras/jwt"
	"denta/infras/otel"
	"denta/internal/domains/auth/model/dto"
	userModel "denta/internal/domains/user/model"
	userRepo "denta/internal/domains/user/repository"
	"denta/shared/constant"
	gDto "denta/shared/dto"
	"denta/shared/failure"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	IssueToken(ctx context.Context, req dto.IssueTokenRequest) (dto.TokenResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

// IssueToken exchanges a registered email for a signed access token. Emails
// that never signed in get refused, registration happens through the user
// upsert endpoint first.
func (s *serviceImpl) IssueToken(ctx context.Context, req dto.IssueTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IssueToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	emailFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Email,
				Table:    userModel.TableName,
			},
		},
	}

	user, err := s.userRepo.Get(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("token request for unknown email")

		return res, failure.Unauthorized("email is not registered") // nolint:wrapcheck
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromToken(token)

	return res, nil
}
