package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arzan03/newsroom/internal/auth"
	"github.com/arzan03/newsroom/internal/models"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(tokens *auth.TokenIssuer, roles ...models.Role) *fiber.App {
	app := fiber.New()
	chain := []fiber.Handler{AuthMiddleware(tokens)}
	if len(roles) > 0 {
		chain = append(chain, RequireRole(roles...))
	}
	chain = append(chain, func(c *fiber.Ctx) error {
		identity, _ := CurrentUser(c)
		return c.JSON(identity)
	})
	app.Get("/protected", chain...)
	return app
}

func call(t *testing.T, app *fiber.App, header string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]string{}
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	app := newTestApp(tokens)

	valid, err := tokens.Issue(auth.Identity{ID: "65f000000000000000000001", Role: models.RoleClient})
	require.NoError(t, err)
	foreign, err := auth.NewTokenIssuer("other", time.Hour).Issue(auth.Identity{ID: "x", Role: models.RoleAdmin})
	require.NoError(t, err)

	tests := []struct {
		name      string
		header    string
		wantCode  int
		wantError string
	}{
		{"missing header", "", fiber.StatusUnauthorized, "No token"},
		{"scheme only", "Bearer", fiber.StatusUnauthorized, "Token is malformed"},
		{"empty token segment", "Bearer ", fiber.StatusUnauthorized, "Token is malformed"},
		{"garbage token", "Bearer abc.def.ghi", fiber.StatusUnauthorized, "Token is not valid"},
		{"wrong secret", "Bearer " + foreign, fiber.StatusUnauthorized, "Token is not valid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := call(t, app, tt.header)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantError, body["error"])
		})
	}

	t.Run("valid token exposes identity", func(t *testing.T) {
		code, body := call(t, app, "Bearer "+valid)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "65f000000000000000000001", body["id"])
		assert.Equal(t, "Client", body["role"])
	})
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	app := newTestApp(tokens, models.RoleAdmin, models.RoleEmployee)

	for role, want := range map[models.Role]int{
		models.RoleAdmin:    fiber.StatusOK,
		models.RoleEmployee: fiber.StatusOK,
		models.RoleClient:   fiber.StatusForbidden,
	} {
		token, err := tokens.Issue(auth.Identity{ID: "u", Role: role})
		require.NoError(t, err)
		code, body := call(t, app, "Bearer "+token)
		assert.Equal(t, want, code, string(role))
		if want == fiber.StatusForbidden {
			assert.Equal(t, "Access denied", body["error"])
		}
	}
}
