package middleware

import (
	"context"
	"strings"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/auth"
	"gsinfo-directory/internal/model"

	"github.com/labstack/echo/v4"
)

const principalKey = "auth_principal"

// RoleChecker is the capability lookup consulted before any admin operation.
type RoleChecker interface {
	HasRole(ctx context.Context, userID string, role model.AppRole) (bool, error)
}

// Authenticate requires a valid bearer token and attaches the caller to the context.
func Authenticate(verifier auth.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return apperror.Authorization("missing authorization header")
			}

			principal, err := verifier.Verify(token)
			if err != nil {
				return err
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// OptionalAuthenticate attaches the caller when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuthenticate(verifier auth.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := bearerToken(c); ok {
				if principal, err := verifier.Verify(token); err == nil {
					c.Set(principalKey, principal)
				}
			}
			return next(c)
		}
	}
}

// RequireRole must run after Authenticate.
func RequireRole(checker RoleChecker, role model.AppRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := GetPrincipal(c)
			if principal == nil {
				return apperror.Authorization("authentication required")
			}

			ok, err := checker.HasRole(c.Request().Context(), principal.UserID, role)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.Forbidden(string(role) + " role required")
			}
			return next(c)
		}
	}
}

func GetPrincipal(c echo.Context) *auth.Principal {
	if p, ok := c.Get(principalKey).(*auth.Principal); ok {
		return p
	}
	return nil
}

func bearerToken(c echo.Context) (string, bool) {
	parts := strings.Fields(c.Request().Header.Get(echo.HeaderAuthorization))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
