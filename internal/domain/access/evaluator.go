package access

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/jhoicas/Souq-api/internal/domain/entity"
	"github.com/jhoicas/Souq-api/pkg/i18n"
)

// HasAccess informa si el rol puede acceder a la ruta.
// Un rol nulo (sin sesión) o no reconocido nunca tiene acceso.
func HasAccess(role *entity.Role, path string) bool {
	if role == nil {
		return false
	}
	prefixes, ok := roleTable[*role]
	if !ok {
		return false
	}
	return matchesAny(path, prefixes)
}

// UnauthorizedRedirectTarget devuelve a dónde enviar a un rol que llegó a una página
// que no le corresponde: clientes a la tienda, personal al dashboard.
func UnauthorizedRedirectTarget(role *entity.Role) string {
	if role != nil && role.IsStaffClass() {
		return DashboardRoot
	}
	return StorefrontRoot
}

// UnauthorizedMessage devuelve el aviso localizado para el rol.
// El personal recibe el mensaje de "solo super admin"; el resto, el genérico de cliente.
func UnauthorizedMessage(role *entity.Role, lang language.Tag) string {
	return i18n.T(lang, UnauthorizedMessageKey(role))
}

// UnauthorizedMessageKey devuelve la clave i18n usada por UnauthorizedMessage.
func UnauthorizedMessageKey(role *entity.Role) string {
	if role != nil && role.IsStaffClass() {
		return i18n.KeyUnauthorizedStaff
	}
	return i18n.KeyUnauthorizedCustomer
}

// matches aplica la regla de prefijo por segmentos: igualdad exacta o prefix + "/".
// "/dashboard" cubre "/dashboard/x" pero no "/dashboardx".
func matches(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if matches(path, p) {
			return true
		}
	}
	return false
}
