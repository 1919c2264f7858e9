package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Gestion-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Gestion-api/pkg/jwt"
)

const (
	testJWTSecret = "secreto-de-prueba-no-usar-en-prod"
	testUserID    = "user-123"
	testIssuer    = "gestion-api-test"
	testExpMin    = 15
)

// buildTestApp monta una ruta protegida con el middleware de auth y los
// roles permitidos, devolviendo los locals extraídos para las aserciones.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id": apphttp.GetUserID(c),
				"role":    apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "generar token de prueba")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_SinHeaderRetorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalidoRetorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp := doRequest(t, app, "Basic abc123")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalidoRetorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp := doRequest(t, app, "Bearer no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), testUserID)
	assert.Contains(t, string(body), entity.RoleAdmin)
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_BodegueroBloqueadoEnRutaStaff(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleManager)

	resp := doRequest(t, app, tokenForRole(t, entity.RoleBodeguero))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "rol sin permiso"),
		"el cuerpo debe indicar el motivo del rechazo: %s", string(body))
}

func TestRequireRole_ManagerAccedeRutaBodega(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleManager, entity.RoleBodeguero)

	resp := doRequest(t, app, tokenForRole(t, entity.RoleManager))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_RolDesconocidoRetorna403(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp := doRequest(t, app, tokenForRole(t, "vendedor"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleManager, testIssuer, testExpMin)
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, entity.RoleManager, role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "un token vencido no debe validar")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err, "la firma con otro secreto no debe validar")
}
