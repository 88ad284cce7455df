package ports

import "context"

// OAuthIdentity datos mínimos que la aplicación toma del perfil del proveedor.
type OAuthIdentity struct {
	Email string
	Name  string
}

// OAuthProvider define el puerto de salida hacia un proveedor OAuth (Google, etc.).
// La aplicación solo conoce este contrato; el adaptador resuelve endpoints, scopes y perfil.
type OAuthProvider interface {
	// Name identifica al proveedor en rutas y en User.Provider ("google").
	Name() string
	// AuthCodeURL arma la URL de autorización del proveedor para el state dado.
	AuthCodeURL(state string) string
	// Exchange canjea el code del callback y devuelve la identidad verificada.
	Exchange(ctx context.Context, code string) (*OAuthIdentity, error)
}
