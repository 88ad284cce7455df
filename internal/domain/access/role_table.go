// Package access contiene la tabla de roles y las reglas puras de acceso por ruta.
// Todo el estado es de solo lectura y se construye una vez al iniciar el proceso;
// cambiar permisos requiere un nuevo despliegue.
package access

import "github.com/jhoicas/Souq-api/internal/domain/entity"

// Raíces de redirección.
const (
	StorefrontRoot = "/"
	DashboardRoot  = "/dashboard"
	LoginPath      = "/auth/login"
)

// Rutas operativas del back office (staff y super_admin).
var staffPaths = []string{
	"/dashboard",
	"/pos",
	"/inventory",
	"/customers",
	"/suppliers",
	"/records",
	"/reports",
	"/admin",
	"/customer-orders",
	"/shipping",
	"/products",
	"/settings",
}

// Rutas de cuenta de cliente (minorista y mayorista).
var customerPaths = []string{
	"/my-orders",
	"/cart",
	"/checkout",
}

// Solo super_admin gestiona permisos.
var superAdminExtraPaths = []string{
	"/permissions",
}

// roleTable se arma por composición: super_admin = staff + extras.
var roleTable = map[entity.Role][]string{
	entity.RoleCustomer:          clonePaths(customerPaths),
	entity.RoleWholesaleCustomer: clonePaths(customerPaths),
	entity.RoleStaff:             clonePaths(staffPaths),
	entity.RoleSuperAdmin:        append(clonePaths(staffPaths), superAdminExtraPaths...),
}

// PermittedPaths devuelve una copia de los prefijos permitidos para el rol.
// Devuelve nil para roles nulos o no reconocidos.
func PermittedPaths(role *entity.Role) []string {
	if role == nil {
		return nil
	}
	paths, ok := roleTable[*role]
	if !ok {
		return nil
	}
	return clonePaths(paths)
}

// Roles devuelve los roles presentes en la tabla.
func Roles() []entity.Role {
	return []entity.Role{
		entity.RoleCustomer,
		entity.RoleWholesaleCustomer,
		entity.RoleStaff,
		entity.RoleSuperAdmin,
	}
}

func clonePaths(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
