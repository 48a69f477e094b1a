package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	apphttp "github.com/jhoicas/stockledger-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stockledger-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de autenticación
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "stockledger-test"
	testExpMin    = 60
)

// tokenForRole genera el header Authorization con un JWT del rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// inventoryGuardApp reproduce la cadena de middlewares del grupo de inventario:
// JWT y luego solo rol admin. El handler devuelve las locals que dejó AuthMiddleware.
func inventoryGuardApp() *fiber.App {
	app := apphttp.NewApp("stockledger-test", zerolog.Nop())
	api := app.Group("/api", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireRole(entity.RoleAdmin))
	api.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	})
	return app
}

func signed(t *testing.T, secret, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, testUserID, role, testIssuer, expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGuardInventario_Admin(t *testing.T) {
	app := inventoryGuardApp()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["userId"], "AuthMiddleware deja el usuario en locals")
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestGuardInventario_Rechazos(t *testing.T) {
	cases := []struct {
		name   string
		header func(t *testing.T) string
		status int
		code   string
	}{
		{"staff no es admin", func(t *testing.T) string { return tokenForRole(t, entity.RoleStaff) }, http.StatusForbidden, "FORBIDDEN"},
		{"sin header", func(*testing.T) string { return "" }, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema distinto de Bearer", func(*testing.T) string { return "Basic YWRtaW46YWRtaW4=" }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token malformado", func(*testing.T) string { return "Bearer token.invalido.aqui" }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"firmado con otro secret", func(t *testing.T) string { return signed(t, "otro-secret", entity.RoleAdmin, testExpMin) }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token expirado", func(t *testing.T) string { return signed(t, testJWTSecret, entity.RoleAdmin, -1) }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token sin rol", func(t *testing.T) string { return signed(t, testJWTSecret, "", testExpMin) }, http.StatusUnauthorized, "MISSING_ROLE"},
	}
	app := inventoryGuardApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
			if h := tc.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body["code"])
			assert.Equal(t, false, body["success"])
		})
	}
}
