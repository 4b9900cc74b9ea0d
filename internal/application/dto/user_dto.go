package dto

// RegisterRequest entrada para registro: name, email, password y role opcional.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse proyección pública de un usuario (sin password).
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// AuthResponse salida de register/login: token JWT + usuario.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MeResponse salida de GET /auth/me.
type MeResponse struct {
	User UserResponse `json:"user"`
}
