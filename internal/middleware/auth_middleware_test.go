package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-inventory-catalog/internal/model"
	"go-inventory-catalog/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuth struct {
	service.AuthService
	mock.Mock
}

func (m *mockAuth) Authenticate(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(token)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func newApp(auth service.AuthService) *fiber.App {
	app := fiber.New()
	api := app.Group("/api", RequireAuth(auth))
	api.Get("/read", RequireRole(model.ReadRoles...), func(c *fiber.Ctx) error {
		p, _ := GetPrincipal(c)
		return c.JSON(fiber.Map{"role": p.Role})
	})
	api.Post("/write", RequireRole(model.WriteRoles...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := map[string]any{}
	if resp.StatusCode != fiber.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&body)
	}
	resp.Body.Close()
	return resp, body
}

func userWithRole(role string) *model.User {
	u := &model.User{Email: role + "@example.com", FullName: role, Role: role, IsActive: true}
	u.ID = uuid.New()
	return u
}

func TestRequireAuth(t *testing.T) {
	auth := new(mockAuth)
	auth.On("Authenticate", "bad").Return(nil, service.ErrInvalidToken)
	auth.On("Authenticate", "stale").Return(nil, service.ErrSessionExpired)
	auth.On("Authenticate", "admin").Return(userWithRole(model.RoleAdmin), nil)
	app := newApp(auth)

	resp, body := do(t, app, http.MethodGet, "/api/read", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing authorization token", body["error"])

	resp, _ = do(t, app, http.MethodGet, "/api/read", "Token abc")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, "/api/read", "Bearer bad")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", body["error"])

	resp, body = do(t, app, http.MethodGet, "/api/read", "Bearer stale")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Session expired (logged in on another device)", body["error"])

	resp, body = do(t, app, http.MethodGet, "/api/read", "bearer admin")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, model.RoleAdmin, body["role"])
}

func TestRequireRole(t *testing.T) {
	auth := new(mockAuth)
	auth.On("Authenticate", "admin").Return(userWithRole(model.RoleAdmin), nil)
	auth.On("Authenticate", "master").Return(userWithRole(model.RoleMaster), nil)
	app := newApp(auth)

	resp, body := do(t, app, http.MethodPost, "/api/write", "Bearer admin")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access denied. Master role required.", body["error"])
	assert.Equal(t, model.RoleAdmin, body["userRole"])

	resp, _ = do(t, app, http.MethodPost, "/api/write", "Bearer master")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/read", "Bearer master")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/", RequireRole(model.RoleMaster), func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, _ := do(t, app, http.MethodGet, "/", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
