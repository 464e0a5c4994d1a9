package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// actorKey is the context key under which the authenticated user id is
// stored. Handlers read it via ActorID.
const actorKey = "actor_id"

// Auth validates the bearer JWT and injects the actor identity into the
// request context. Requests without a valid token are rejected.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := actorFromHeader(c, jwtSecret)
			if err != nil {
				return err
			}
			c.Set(actorKey, id)
			return next(c)
		}
	}
}

// OptionalAuth resolves the actor when a token is present but lets anonymous
// requests through. Used on routes that are unauthenticated-safe (reads,
// view and like counters) where the core decides what anonymity may do.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") != "" {
				if id, err := actorFromHeader(c, jwtSecret); err == nil {
					c.Set(actorKey, id)
				}
			}
			return next(c)
		}
	}
}

// ActorID returns the authenticated user id, empty for anonymous requests.
func ActorID(c echo.Context) string {
	id, _ := c.Get(actorKey).(string)
	return id
}

func actorFromHeader(c echo.Context, jwtSecret string) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}
	return sub, nil
}
