package jwt_test

import (
	"testing"
	"time"

	jwtGo "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"denta/config"
	"denta/infras/jwt"
)

func newService(secret string) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "denta"
	cfg.JWT.Secret = secret
	cfg.JWT.ExpireHours = 24

	return jwt.New(cfg)
}

func TestJWT_GenerateAndValidate(t *testing.T) {
	svc := newService("test-secret")

	token, err := svc.GenerateToken("u-1", "jane@example.com", "patient")

	assert.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, int64(24*3600), token.ExpiresIn)

	claims, err := svc.ValidateToken(token.AccessToken)

	assert.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "patient", claims.Role)
	assert.Equal(t, "u-1", claims.Subject)
	assert.NotEmpty(t, claims.TokenID)
}

func TestJWT_ValidateToken_Garbage(t *testing.T) {
	svc := newService("test-secret")

	_, err := svc.ValidateToken("not-a-token")

	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestJWT_ValidateToken_WrongSecret(t *testing.T) {
	issuer := newService("test-secret")
	verifier := newService("other-secret")

	token, err := issuer.GenerateToken("u-1", "jane@example.com", "patient")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token.AccessToken)

	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestJWT_ValidateToken_Expired(t *testing.T) {
	svc := newService("test-secret")

	past := time.Now().Add(-2 * time.Hour)
	claims := jwt.Claims{
		UserID: "u-1",
		Email:  "jane@example.com",
		RegisteredClaims: jwtGo.RegisteredClaims{
			ExpiresAt: jwtGo.NewNumericDate(past.Add(time.Hour)),
			IssuedAt:  jwtGo.NewNumericDate(past),
			NotBefore: jwtGo.NewNumericDate(past),
			Subject:   "u-1",
		},
	}

	signed, err := jwtGo.NewWithClaims(jwtGo.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.ValidateToken(signed)

	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestJWT_ValidateToken_MissingEmailClaim(t *testing.T) {
	svc := newService("test-secret")

	now := time.Now()
	claims := jwt.Claims{
		UserID: "u-1",
		RegisteredClaims: jwtGo.RegisteredClaims{
			ExpiresAt: jwtGo.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwtGo.NewNumericDate(now),
			Subject:   "u-1",
		},
	}

	signed, err := jwtGo.NewWithClaims(jwtGo.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.ValidateToken(signed)

	assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer header", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
