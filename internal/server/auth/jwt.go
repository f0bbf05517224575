// Package auth verifies access tokens minted by the hosted identity
// provider. Tokens are HS256-signed with the project's JWT secret; this
// server only verifies them, issuance is the provider's job.
package auth

import (
	"context"

	"github.com/dmitrijs2005/timebank/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims — стандартные утверждения токена; Subject содержит внешний
// идентификатор пользователя.
type Claims struct {
	jwt.RegisteredClaims
}

type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret []byte) *TokenVerifier {
	return &TokenVerifier{secret: secret}
}

// Verify checks the token signature and expiry and returns the subject
// (the provider-confirmed identity id). The context is accepted so remote
// verifier implementations can share the interface.
func (v *TokenVerifier) Verify(_ context.Context, tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
