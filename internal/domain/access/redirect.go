package access

import (
	"net/url"
	"strings"
)

// CallbackParam nombre del parámetro con la ruta a la que volver tras el login.
const CallbackParam = "callbackUrl"

// LoginRedirectURL arma /auth/login?callbackUrl=<path>. Las "/" se dejan sin escapar
// porque son válidas en la query y el front las espera legibles.
func LoginRedirectURL(path string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(SafeCallbackURL(path)), "%2F", "/")
	return LoginPath + "?" + CallbackParam + "=" + escaped
}

// SafeCallbackURL acepta solo rutas locales ("/x"); cualquier URL absoluta,
// protocol-relative ("//host") o vacía se reemplaza por la raíz de la tienda.
func SafeCallbackURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return StorefrontRoot
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return StorefrontRoot
	}
	return raw
}
