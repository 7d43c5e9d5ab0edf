// Package auth verifies bearer tokens issued by the identity provider.
package auth

import (
	"errors"
	"fmt"
	"time"

	"gsinfo-directory/internal/apperror"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated caller.
type Principal struct {
	UserID string
	Email  string
	Phone  string
}

type Claims struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}

type jwtVerifier struct {
	secret []byte
	issuer string
}

func NewTokenVerifier(secret, issuer string) TokenVerifier {
	return &jwtVerifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

func (v *jwtVerifier) Verify(tokenString string) (*Principal, error) {
	if len(v.secret) == 0 {
		return nil, apperror.Configuration("authentication is not configured")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Wrap(apperror.KindAuthorization, "token expired", err)
		}
		return nil, apperror.Wrap(apperror.KindAuthorization, "invalid token", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, apperror.Authorization("invalid token")
	}

	return &Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Phone:  claims.Phone,
	}, nil
}

// Sign issues an HS256 token for the principal. Used by tooling and tests.
func Sign(secret, issuer string, p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: p.Email,
		Phone: p.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
