package access

import (
	"sort"

	"github.com/jhoicas/Souq-api/internal/domain/entity"
)

// PathClass clasifica una ruta para el gate de peticiones.
type PathClass int

const (
	PathUnrestricted PathClass = iota
	PathAdminOnly
	PathCustomerOnly
)

func (c PathClass) String() string {
	switch c {
	case PathAdminOnly:
		return "admin_only"
	case PathCustomerOnly:
		return "customer_only"
	default:
		return "unrestricted"
	}
}

// Las dos listas del gate se derivan de roleTable para que no puedan divergir:
// admin-only = rutas de personal que ningún cliente tiene; customer-only = lo inverso.
var (
	adminOnlyPaths    = derivePaths(staffRoles(), customerRoles())
	customerOnlyPaths = derivePaths(customerRoles(), staffRoles())
)

// Classify devuelve la clase de la ruta aplicando la misma regla de prefijo que HasAccess.
func Classify(path string) PathClass {
	if matchesAny(path, adminOnlyPaths) {
		return PathAdminOnly
	}
	if matchesAny(path, customerOnlyPaths) {
		return PathCustomerOnly
	}
	return PathUnrestricted
}

// AdminOnlyPaths devuelve una copia ordenada de los prefijos solo-personal.
func AdminOnlyPaths() []string { return clonePaths(adminOnlyPaths) }

// CustomerOnlyPaths devuelve una copia ordenada de los prefijos solo-cliente.
func CustomerOnlyPaths() []string { return clonePaths(customerOnlyPaths) }

func staffRoles() []entity.Role {
	return []entity.Role{entity.RoleStaff, entity.RoleSuperAdmin}
}

func customerRoles() []entity.Role {
	return []entity.Role{entity.RoleCustomer, entity.RoleWholesaleCustomer}
}

// derivePaths = unión de las rutas de include menos las que aparezcan en exclude.
func derivePaths(include, exclude []entity.Role) []string {
	excluded := make(map[string]struct{})
	for _, r := range exclude {
		for _, p := range roleTable[r] {
			excluded[p] = struct{}{}
		}
	}
	seen := make(map[string]struct{})
	var out []string
	for _, r := range include {
		for _, p := range roleTable[r] {
			if _, skip := excluded[p]; skip {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
