package service

import (
	"context"
	"errors"
	"fmt"

	"denta/config"
	"denta/infras/jwt"
	"denta/infras/otel"
	"denta/internal/domains/user/model"
	"denta/internal/domains/user/model/dto"
	"denta/internal/domains/user/repository"
	"denta/shared"
	"denta/shared/constant"
	gDto "denta/shared/dto"
	"denta/shared/failure"
	"denta/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type User interface {
	Upsert(ctx context.Context, email string, req dto.UpsertUserRequest) (dto.UpsertUserResponse, error)
	IsAdmin(ctx context.Context, email string) (dto.IsAdminResponse, error)
	PromoteToAdmin(ctx context.Context, id string) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo repository.User
	cfg  *config.Config
	jwt  jwt.JWT
	otel otel.Otel
}

func New(repo repository.User, cfg *config.Config, jwt jwt.JWT, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		jwt:  jwt,
		otel: otel,
	}
}

// Upsert registers the email on first sign-in and returns an access token.
// Calling it again for a known email is a no-op that re-issues a token.
func (s *serviceImpl) Upsert(ctx context.Context, email string, req dto.UpsertUserRequest) (res dto.UpsertUserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.getByEmail(ctx, email)
	if err != nil {
		return res, err
	}

	if user.ID == constant.Empty {
		user = req.ToModel(email)

		if err = s.repo.Insert(ctx, user); err != nil {
			var pqErr *pq.Error
			if !errors.As(err, &pqErr) || string(pqErr.Code) != constant.PqErrorCodeUniqueViolation {
				log.Error().Err(err).Msg("failed to create user")

				return res, fmt.Errorf("failed to create user: %w", err)
			}

			// Lost the race to a concurrent first sign-in, the row exists now.
			if user, err = s.getByEmail(ctx, email); err != nil {
				return res, err
			}
		}
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.User.FromModel(user)
	res.AccessToken = token.AccessToken
	res.TokenType = token.TokenType
	res.ExpiresIn = token.ExpiresIn

	return res, nil
}

// IsAdmin answers from the user store, never from token claims, so a
// promotion takes effect without waiting for tokens to rotate.
func (s *serviceImpl) IsAdmin(ctx context.Context, email string) (res dto.IsAdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAdmin")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.getByEmail(ctx, email)
	if err != nil {
		return res, err
	}

	res.Admin = user.ID != constant.Empty && user.Role == constant.RoleAdmin

	return res, nil
}

// PromoteToAdmin raises a patient to admin. Roles only move upward, so
// promoting an admin again succeeds without touching the row.
func (s *serviceImpl) PromoteToAdmin(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PromoteToAdmin")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	user, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if user.Role == constant.RoleAdmin {
		return nil
	}

	updatedFields := map[string]any{
		model.FieldRole:          constant.RoleAdmin,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to promote user")

		return fmt.Errorf("failed to promote user: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, failure.Upstream("user store unavailable") // nolint:wrapcheck
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
		log.Error().Err(err).Msg("failed to count users")

		return res, failure.Upstream("user store unavailable") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) getByEmail(ctx context.Context, email string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(email, model.FieldEmail, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by email")

		return user, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}
