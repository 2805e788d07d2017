package auth_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/nitikab23/autoai/internal/testutils/http"
	"github.com/nitikab23/autoai/pkg/auth"
	"github.com/nitikab23/autoai/pkg/utils/try"
)

func TestIssueAndVerify(t *testing.T) {
	secret := []byte("test-secret")

	t.Run("a fresh token verifies to its subject", func(t *testing.T) {
		token := try.To(auth.Issue(secret, "analyst@example.com", time.Hour)).OrFatal(t)

		subject, err := auth.Verify(secret, token)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if subject != "analyst@example.com" {
			t.Errorf("unmatch subject: actual = %s, expected = analyst@example.com", subject)
		}
	})

	t.Run("an expired token is rejected", func(t *testing.T) {
		token := try.To(auth.Issue(secret, "analyst@example.com", -time.Minute)).OrFatal(t)

		if _, err := auth.Verify(secret, token); err == nil {
			t.Error("an expired token should not verify")
		}
	})

	t.Run("a token signed with another secret is rejected", func(t *testing.T) {
		token := try.To(auth.Issue([]byte("other-secret"), "analyst@example.com", time.Hour)).OrFatal(t)

		if _, err := auth.Verify(secret, token); err == nil {
			t.Error("a foreign token should not verify")
		}
	})

	t.Run("a token without a subject is rejected", func(t *testing.T) {
		token := try.To(auth.Issue(secret, "", time.Hour)).OrFatal(t)

		if _, err := auth.Verify(secret, token); !errors.Is(err, auth.ErrNoSubject) {
			t.Errorf("unmatch error: actual = %s, expected = %s", err, auth.ErrNoSubject)
		}
	})
}

func TestMiddleware(t *testing.T) {
	secret := []byte("test-secret")

	handler := func(calledWith *string) echo.HandlerFunc {
		return func(c echo.Context) error {
			if subject, ok := c.Get(auth.SubjectKey).(string); ok {
				*calledWith = subject
			}
			return c.NoContent(http.StatusOK)
		}
	}

	t.Run("a valid bearer token passes and exposes the subject", func(t *testing.T) {
		token := try.To(auth.Issue(secret, "analyst@example.com", time.Hour)).OrFatal(t)

		e := echo.New()
		c, respRec := httptestutil.Get(
			e, "/api/projects",
			httptestutil.WithHeader(echo.HeaderAuthorization, "Bearer "+token),
		)

		calledWith := ""
		testee := auth.Middleware(secret)(handler(&calledWith))
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if respRec.Code != http.StatusOK {
			t.Errorf("unmatch status code:%d, expected:%d", respRec.Code, http.StatusOK)
		}
		if calledWith != "analyst@example.com" {
			t.Errorf("the subject is not exposed to the handler: %q", calledWith)
		}
	})

	for name, header := range map[string]string{
		"when the header is missing, it rejects":     "",
		"when the scheme is not Bearer, it rejects":  "Basic YW5hbHlzdDpzZWNyZXQ=",
		"when the token is not parsable, it rejects": "Bearer not-a-token",
		"when the token is empty, it rejects":        "Bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			options := []httptestutil.RequestOption{}
			if header != "" {
				options = append(options, httptestutil.WithHeader(echo.HeaderAuthorization, header))
			}
			c, _ := httptestutil.Get(e, "/api/projects", options...)

			calledWith := ""
			testee := auth.Middleware(secret)(handler(&calledWith))
			err := testee(c)

			var echoErr *echo.HTTPError
			if !errors.As(err, &echoErr) {
				t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
			}
			if echoErr.Code != http.StatusUnauthorized {
				t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusUnauthorized)
			}
			if calledWith != "" {
				t.Error("the handler should not run")
			}
		})
	}
}
