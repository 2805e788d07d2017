// Package auth guards the API with bearer tokens signed by a shared secret.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	binderr "github.com/nitikab23/autoai/pkg/api-types-binding/errors"
)

// SubjectKey is the echo context key holding the authenticated subject.
const SubjectKey = "auth.subject"

var ErrNoSubject = errors.New("token has no subject")

// Issue signs a token for subject, valid for ttl.
func Issue(secret []byte, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(secret)
}

// Verify parses a signed token and returns its subject.
func Verify(secret []byte, token string) (string, error) {
	parsed, err := jwt.Parse(
		token,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if subject == "" {
		return "", ErrNoSubject
	}
	return subject, nil
}

// Middleware rejects requests without a valid "Authorization: Bearer"
// header. The token's subject is stored in the context under SubjectKey.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return binderr.Unauthorized(
					"bearer token is required",
					fmt.Errorf("no bearer token in Authorization header"),
				)
			}

			subject, err := Verify(secret, token)
			if err != nil {
				return binderr.Unauthorized("invalid token", err)
			}

			c.Set(SubjectKey, subject)
			return next(c)
		}
	}
}
