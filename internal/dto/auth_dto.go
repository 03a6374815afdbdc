package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type CrearUsuarioRequest struct {
	Username string `json:"username" validate:"required,min=1,max=150"`
	Nombre   string `json:"name"     validate:"required,min=2,max=100"`
	Apellido string `json:"surname"  validate:"required,min=2,max=100"`
	Sucursal string `json:"branch"   validate:"required,min=1,max=10"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      string `json:"role"     validate:"required,oneof=admin cajero"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UsuarioResponse never carries the password hash.
type UsuarioResponse struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Nombre    string  `json:"name"`
	Apellido  string  `json:"surname"`
	Sucursal  string  `json:"branch"`
	Rol       string  `json:"role"`
	LastLogin *string `json:"lastLogin"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"` // seconds
	User        UsuarioResponse `json:"user"`
}

type CheckUsernameResponse struct {
	IsUnique bool `json:"isUnique"`
}
