package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Souq-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Souq-api/pkg/jwt"
)

// buildGateApp construye una app mínima con el gate delante de un handler comodín
// que responde 200 con el rol que dejó el gate.
func buildGateApp(cookie apphttp.SessionCookie) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.EdgeGate(apphttp.EdgeGateConfig{Secret: testSecret, Issuer: testIssuer, Cookie: cookie}))
	app.Get("/*", func(c *fiber.Ctx) error {
		role := ""
		if r := apphttp.GetRole(c); r != nil {
			role = string(*r)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"role": role, "session": apphttp.HasSession(c)})
	})
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// Admin-only
// ──────────────────────────────────────────────────────────────────────────────

func TestEdgeGate_AdminOnly_SinCookieRedirigeAlLoginConCallback(t *testing.T) {
	app := buildGateApp(devCookie)
	resp := get(t, app, "/inventory", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login?callbackUrl=/inventory", resp.Header.Get("Location"))
}

func TestEdgeGate_AdminOnly_RutaAnidadaConservaCallbackCompleto(t *testing.T) {
	app := buildGateApp(devCookie)
	resp := get(t, app, "/reports/sales/2024", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login?callbackUrl=/reports/sales/2024", resp.Header.Get("Location"))
}

func TestEdgeGate_AdminOnly_FirmaInvalidaRedirigeALaTienda(t *testing.T) {
	app := buildGateApp(devCookie)
	forged, err := pkgjwt.Generate("otro-secreto", testIssuer, pkgjwt.SessionInput{UserID: testUserID, Role: "super_admin"}, time.Hour)
	require.NoError(t, err)

	resp := get(t, app, "/reports", forged)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"), "un token roto no manda al login")
}

func TestEdgeGate_AdminOnly_CookieBasuraRedirigeALaTienda(t *testing.T) {
	app := buildGateApp(devCookie)
	resp := get(t, app, "/dashboard", "esto-no-es-un-jwt")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestEdgeGate_AdminOnly_TokenExpiradoRedirigeALaTienda(t *testing.T) {
	app := buildGateApp(devCookie)
	expired, err := pkgjwt.Generate(testSecret, testIssuer, pkgjwt.SessionInput{UserID: testUserID, Role: "staff"}, -time.Minute)
	require.NoError(t, err)

	resp := get(t, app, "/pos", expired)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestEdgeGate_AdminOnly_RolClienteRedirigeALaTienda(t *testing.T) {
	app := buildGateApp(devCookie)
	for _, role := range []string{"customer", "wholesale_customer"} {
		t.Run(role, func(t *testing.T) {
			resp := get(t, app, "/dashboard", tokenFor(t, role))
			assert.Equal(t, fiber.StatusFound, resp.StatusCode)
			assert.Equal(t, "/", resp.Header.Get("Location"))
		})
	}
}

func TestEdgeGate_AdminOnly_RolNoReconocidoRedirigeALaTienda(t *testing.T) {
	app := buildGateApp(devCookie)
	resp := get(t, app, "/inventory", tokenFor(t, "root"))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestEdgeGate_Permissions_StaffDenegadoSuperAdminAdmitido(t *testing.T) {
	app := buildGateApp(devCookie)

	resp := get(t, app, "/permissions", tokenFor(t, "staff"))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp = get(t, app, "/permissions", tokenFor(t, "super_admin"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestEdgeGate_AdminOnly_StaffAdmitido(t *testing.T) {
	app := buildGateApp(devCookie)
	for _, p := range []string{"/dashboard", "/dashboard/overview", "/inventory", "/settings/general", "/customer-orders/42"} {
		t.Run(p, func(t *testing.T) {
			resp := get(t, app, p, tokenFor(t, "staff"))
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Customer-only
// ──────────────────────────────────────────────────────────────────────────────

func TestEdgeGate_CustomerOnly_SinCookieRedirigeAlLogin(t *testing.T) {
	app := buildGateApp(devCookie)
	resp := get(t, app, "/cart", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login?callbackUrl=/cart", resp.Header.Get("Location"))
}

func TestEdgeGate_CustomerOnly_CualquierSesionAdmitida(t *testing.T) {
	app := buildGateApp(devCookie)
	// Solo se exige presencia de sesión: el personal también pasa.
	for _, role := range []string{"customer", "wholesale_customer", "staff", "super_admin"} {
		t.Run(role, func(t *testing.T) {
			resp := get(t, app, "/my-orders/7", tokenFor(t, role))
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		})
	}
}

func TestEdgeGate_CustomerOnly_TokenRotoCuentaComoSesion(t *testing.T) {
	app := buildGateApp(devCookie)
	resp := get(t, app, "/checkout", "roto")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libres, públicas y assets
// ──────────────────────────────────────────────────────────────────────────────

func TestEdgeGate_RutasLibresYAssetsAdmitidas(t *testing.T) {
	app := buildGateApp(devCookie)
	for _, p := range []string{
		"/",
		"/products-catalog",
		"/dashboardx",
		"/auth/login",
		"/api/auth/session",
		"/_next/static/chunk.js",
		"/favicon.ico",
		"/health",
	} {
		t.Run(p, func(t *testing.T) {
			resp := get(t, app, p, "")
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		})
	}
}

func TestEdgeGate_VariantesDeRutaNoEscapanDeLaClasificacion(t *testing.T) {
	app := buildGateApp(devCookie)
	cases := []struct {
		path     string
		callback string
	}{
		{"/Inventory", "/Inventory"},
		{"/INVENTORY/", "/INVENTORY"},
		{"/inventory/", "/inventory"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp := get(t, app, tc.path, "")
			assert.Equal(t, fiber.StatusFound, resp.StatusCode)
			assert.Equal(t, "/auth/login?callbackUrl="+tc.callback, resp.Header.Get("Location"))
		})
	}
}

func TestEdgeGate_CallbackConservaMayusculas(t *testing.T) {
	app := buildGateApp(devCookie)
	for _, p := range []string{"/inventory/SKU-AbC9", "/my-orders/ORD-XyZ", "/reports/Q3/Ventas"} {
		t.Run(p, func(t *testing.T) {
			resp := get(t, app, p, "")
			assert.Equal(t, fiber.StatusFound, resp.StatusCode)
			assert.Equal(t, "/auth/login?callbackUrl="+p, resp.Header.Get("Location"))
		})
	}
}

func TestEdgeGate_AdminOnly_EmisorDistintoRedirigeALaTienda(t *testing.T) {
	app := buildGateApp(devCookie)
	foreign, err := pkgjwt.Generate(testSecret, "otro-emisor", pkgjwt.SessionInput{UserID: testUserID, Role: "super_admin"}, time.Hour)
	require.NoError(t, err)

	resp := get(t, app, "/permissions", foreign)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestEdgeGate_TokenVerificadoDejaLocals(t *testing.T) {
	app := buildGateApp(devCookie)
	resp := get(t, app, "/", tokenFor(t, "wholesale_customer"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "wholesale_customer", body["role"])
	assert.Equal(t, true, body["session"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Nombre de cookie según entorno
// ──────────────────────────────────────────────────────────────────────────────

func TestEdgeGate_NombreDeCookieEnProduccion(t *testing.T) {
	prod := apphttp.NewSessionCookie(true)
	assert.Equal(t, "__Secure-souq.session-token", prod.Name)
	assert.True(t, prod.Secure)
	assert.Equal(t, "souq.session-token", devCookie.Name)
	assert.False(t, devCookie.Secure)

	app := buildGateApp(prod)

	// La cookie con el nombre de desarrollo no cuenta como sesión en producción.
	resp := get(t, app, "/inventory", tokenFor(t, "staff"))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login?callbackUrl=/inventory", resp.Header.Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
	req.AddCookie(&http.Cookie{Name: prod.Name, Value: tokenFor(t, "staff")})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
