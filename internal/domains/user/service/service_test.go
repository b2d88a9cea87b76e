package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"denta/config"
	"denta/infras/jwt"
	jwtMocks "denta/infras/jwt/mocks"
	"denta/infras/otel/mocks"
	userMocks "denta/internal/domains/user/mocks"
	"denta/internal/domains/user/model"
	"denta/internal/domains/user/model/dto"
	"denta/internal/domains/user/service"
	"denta/shared/constant"
	"denta/shared/failure"
)

type userFixture struct {
	svc  service.User
	repo *userMocks.MockUser
	jwt  *jwtMocks.MockJWT
}

func newUserService(t *testing.T) userFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}

	return userFixture{
		svc:  service.New(mockRepo, cfg, mockJWT, mocks.NewOtel()),
		repo: mockRepo,
		jwt:  mockJWT,
	}
}

func issuedToken() *jwt.Token {
	return &jwt.Token{
		AccessToken: "signed-token",
		TokenType:   "Bearer",
		ExpiresIn:   86400,
	}
}

func TestUserService_Upsert(t *testing.T) {
	email := "jane@example.com"

	tests := []struct {
		name      string
		setupMock func(f userFixture)
		wantErr   bool
	}{
		{
			name: "first sign-in creates the user",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				f.jwt.EXPECT().
					GenerateToken(gomock.Any(), email, constant.RolePatient).
					Return(issuedToken(), nil)
			},
		},
		{
			name: "known email reissues a token without inserting",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "u-1", Email: email, Role: constant.RoleAdmin}, nil)

				f.jwt.EXPECT().
					GenerateToken("u-1", email, constant.RoleAdmin).
					Return(issuedToken(), nil)
			},
		},
		{
			name: "concurrent first sign-in falls back to the existing row",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: "23505"})

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "u-1", Email: email, Role: constant.RolePatient}, nil)

				f.jwt.EXPECT().
					GenerateToken("u-1", email, constant.RolePatient).
					Return(issuedToken(), nil)
			},
		},
		{
			name: "insert fails",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "token generation fails",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "u-1", Email: email, Role: constant.RolePatient}, nil)

				f.jwt.EXPECT().
					GenerateToken("u-1", email, constant.RolePatient).
					Return(nil, errors.New("signing error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserService(t)
			tt.setupMock(f)

			res, err := f.svc.Upsert(context.Background(), email, dto.UpsertUserRequest{})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "signed-token", res.AccessToken)
			assert.Equal(t, "Bearer", res.TokenType)
			assert.Equal(t, email, res.User.Email)
		})
	}
}

func TestUserService_IsAdmin(t *testing.T) {
	tests := []struct {
		name      string
		user      model.User
		wantAdmin bool
	}{
		{
			name:      "admin user",
			user:      model.User{ID: "u-1", Email: "admin@example.com", Role: constant.RoleAdmin},
			wantAdmin: true,
		},
		{
			name:      "patient user",
			user:      model.User{ID: "u-2", Email: "jane@example.com", Role: constant.RolePatient},
			wantAdmin: false,
		},
		{
			name:      "unknown email",
			user:      model.User{},
			wantAdmin: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserService(t)

			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.user, nil)

			res, err := f.svc.IsAdmin(context.Background(), "someone@example.com")

			assert.NoError(t, err)
			assert.Equal(t, tt.wantAdmin, res.Admin)
		})
	}
}

func TestUserService_PromoteToAdmin(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f userFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "promotes a patient",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "u-1", Role: constant.RolePatient}, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, constant.RoleAdmin, fields[model.FieldRole])

						return nil
					})
			},
		},
		{
			name: "promoting an admin again is a no-op",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "u-1", Role: constant.RoleAdmin}, nil)
			},
		},
		{
			name: "unknown user",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "update fails",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "u-1", Role: constant.RolePatient}, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserService(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@example.com")
			err := f.svc.PromoteToAdmin(ctx, "u-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}
