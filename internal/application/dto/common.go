package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse descriptor de página que el front renderiza (ruta, rol y dirección del idioma).
type PageResponse struct {
	Page string `json:"page"`
	Role string `json:"role,omitempty"`
	Lang string `json:"lang"`
	Dir  string `json:"dir"`
}

// NoticeResponse aviso que reemplaza una sección protegida cuando el rol no alcanza.
type NoticeResponse struct {
	Status  string `json:"status"` // placeholder | unauthorized
	Message string `json:"message"`
	Lang    string `json:"lang"`
	Dir     string `json:"dir"`
}

// AuthErrorResponse descriptor de la página /auth/error.
type AuthErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Lang    string `json:"lang"`
	Dir     string `json:"dir"`
}
