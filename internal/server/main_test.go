package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"clubhub/internal/config"
	"clubhub/internal/database"
	"clubhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a Server on an in-memory database with no Redis and
// mounts its routes on a fresh Fiber app.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := database.ConnectTest()
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret: "unit-test-secret",
		Port:      "0",
		Env:       "test",
	}

	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupRoutes(app)

	return s, app
}

// doRequest performs a JSON request with an optional bearer token and returns
// the status code and raw response body.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// signup registers a member through the API and returns its id and token.
func signup(t *testing.T, app *fiber.App, firstName, surname, email string) (string, string) {
	t.Helper()

	status, raw := doRequest(t, app, fiber.MethodPost, "/api/auth/signup", "", map[string]string{
		"firstName": firstName,
		"surname":   surname,
		"email":     email,
		"password":  "sufficiently-long",
	})
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.User.ID)
	return resp.User.ID, resp.Token
}

// promote flips a member to the admin role directly in the store.
func promote(t *testing.T, s *Server, id string) {
	t.Helper()
	require.NoError(t, s.memberRepo.UpdateRole(context.Background(), id, models.RoleAdmin))
}
