package dto

import (
	"denta/infras/jwt"
)

type IssueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (t *TokenResponse) FromToken(token *jwt.Token) {
	t.AccessToken = token.AccessToken
	t.TokenType = token.TokenType
	t.ExpiresIn = token.ExpiresIn
}
