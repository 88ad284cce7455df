package entity

import "time"

// Role identifica el rol de un usuario. Solo existen cuatro valores válidos;
// cualquier otro texto leído de la DB o de un token se convierte en RoleUnrecognized.
type Role string

// Roles válidos para User.
const (
	RoleCustomer          Role = "customer"
	RoleWholesaleCustomer Role = "wholesale_customer"
	RoleStaff             Role = "staff"
	RoleSuperAdmin        Role = "super_admin"

	// RoleUnrecognized marca un rol fuera de la enumeración (token antiguo, dato corrupto).
	// Nunca se persiste; el evaluador de acceso lo trata como "sin acceso".
	RoleUnrecognized Role = "unrecognized"
)

// Proveedores de autenticación con los que se creó la cuenta.
const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
)

// ParseRole valida un rol leído desde fuera (claims JWT, filas de DB).
// Devuelve nil si s está vacío (sin rol) y RoleUnrecognized si no pertenece a la enumeración.
func ParseRole(s string) *Role {
	if s == "" {
		return nil
	}
	r := Role(s)
	switch r {
	case RoleCustomer, RoleWholesaleCustomer, RoleStaff, RoleSuperAdmin:
		return &r
	default:
		u := RoleUnrecognized
		return &u
	}
}

// IsStaffClass informa si el rol pertenece al personal del back office.
func (r Role) IsStaffClass() bool {
	return r == RoleStaff || r == RoleSuperAdmin
}

// IsCustomerClass informa si el rol es de cliente (minorista o mayorista).
func (r Role) IsCustomerClass() bool {
	return r == RoleCustomer || r == RoleWholesaleCustomer
}

// Valid informa si el rol es uno de los cuatro asignables.
func (r Role) Valid() bool {
	return r.IsStaffClass() || r.IsCustomerClass()
}

// User representa un usuario de la tienda o del back office.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt; vacío en cuentas creadas solo vía OAuth
	Role         Role   // se fija al crear; solo lo cambia una acción administrativa
	Provider     string // credentials, google
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword informa si la cuenta puede iniciar sesión con credenciales.
func (u *User) HasPassword() bool {
	return u != nil && u.PasswordHash != ""
}
