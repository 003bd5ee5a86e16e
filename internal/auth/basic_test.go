package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/metropower/dashboard/internal/domain"
	apperrors "github.com/metropower/dashboard/pkg/util/errorutil"
)

type stubAuthenticator struct {
	calls atomic.Int32
	users map[string]*domain.User
	pass  string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, username, password string) (*domain.User, error) {
	s.calls.Add(1)
	user, ok := s.users[username]
	if !ok || password != s.pass {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func newTestApp(m *BasicAuth) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code}})
		},
	})
	app.Use(m.Handle)
	app.Get("/read", func(c *fiber.Ctx) error {
		user, _ := PrincipalFromContext(c)
		return c.SendString(user.Username)
	})
	app.Post("/write", RequireWriter(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})
	return app
}

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func newStub() *stubAuthenticator {
	return &stubAuthenticator{
		pass: "s3cret",
		users: map[string]*domain.User{
			"admin":  {ID: 1, Username: "admin", Role: domain.UserRoleAdmin, Active: true},
			"viewer": {ID: 2, Username: "viewer", Role: domain.UserRoleViewer, Active: true},
		},
	}
}

func TestBasicAuth_RejectsMissingHeader(t *testing.T) {
	t.Parallel()

	app := newTestApp(NewBasicAuth(newStub(), "Dashboard", 0, 0))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/read", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, `Basic realm="Dashboard"`, resp.Header.Get("WWW-Authenticate"))
}

func TestBasicAuth_RejectsWrongPassword(t *testing.T) {
	t.Parallel()

	app := newTestApp(NewBasicAuth(newStub(), "", 0, 0))
	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	req.Header.Set("Authorization", basicHeader("admin", "nope"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

type failingAuthenticator struct{}

func (failingAuthenticator) Authenticate(context.Context, string, string) (*domain.User, error) {
	return nil, errors.New("connection refused")
}

func TestBasicAuth_BackendFailureIsNotAChallenge(t *testing.T) {
	t.Parallel()

	app := newTestApp(NewBasicAuth(failingAuthenticator{}, "", 0, 0))
	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	req.Header.Set("Authorization", basicHeader("admin", "s3cret"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Empty(t, resp.Header.Get(fiber.HeaderWWWAuthenticate))
}

func TestBasicAuth_CachesVerifiedCredentials(t *testing.T) {
	t.Parallel()

	stub := newStub()
	app := newTestApp(NewBasicAuth(stub, "", 8, time.Minute))
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/read", nil)
		req.Header.Set("Authorization", basicHeader("viewer", "s3cret"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	require.EqualValues(t, 1, stub.calls.Load())
}

func TestRequireWriter(t *testing.T) {
	t.Parallel()

	app := newTestApp(NewBasicAuth(newStub(), "", 0, 0))

	req := httptest.NewRequest(http.MethodPost, "/write", nil)
	req.Header.Set("Authorization", basicHeader("viewer", "s3cret"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/write", nil)
	req.Header.Set("Authorization", basicHeader("admin", "s3cret"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestParseBasic(t *testing.T) {
	t.Parallel()

	user, pass, ok := parseBasic(basicHeader("admin", "a:b"))
	require.True(t, ok)
	require.Equal(t, "admin", user)
	require.Equal(t, "a:b", pass)

	_, _, ok = parseBasic("Bearer abc")
	require.False(t, ok)
	_, _, ok = parseBasic("Basic !!!")
	require.False(t, ok)
}

func TestPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	require.NoError(t, ComparePassword(hash, "s3cret"))
	require.Error(t, ComparePassword(hash, "wrong"))
}
