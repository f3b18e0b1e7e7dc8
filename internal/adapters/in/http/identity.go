package http

import (
	"errors"
	"net/http"
	"strings"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const callerKey = "caller"

var errUnauthenticated = errors.New("unauthenticated")

// Claims are the identity claims issued by the identity service.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// authenticate verifies the HS256 bearer token and stores the caller in the
// echo context. Requests without a valid token are answered with 401.
func authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, err := parseBearer(c.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Authentication required",
				})
			}

			c.Set(callerKey, caller)
			return next(c)
		}
	}
}

func parseBearer(header string, secret []byte) (access.Caller, error) {
	if len(secret) == 0 {
		return access.Caller{}, errors.New("jwt secret is empty")
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return access.Caller{}, errUnauthenticated
	}

	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), &Claims{}, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return access.Caller{}, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" || claims.Role == "" {
		return access.Caller{}, errUnauthenticated
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return access.Caller{}, err
	}
	role, err := access.ParseRole(strings.ToLower(claims.Role))
	if err != nil {
		return access.Caller{}, err
	}

	return access.NewCaller(userID, role)
}

func callerFrom(c echo.Context) (access.Caller, error) {
	caller, ok := c.Get(callerKey).(access.Caller)
	if !ok {
		return access.Caller{}, errUnauthenticated
	}
	return caller, nil
}
