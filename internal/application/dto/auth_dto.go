package dto

// LoginRequest credenciales del operador de mostrador.
type LoginRequest struct {
	Operator string `json:"operator" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y datos del operador.
type LoginResponse struct {
	Token     string `json:"token"`
	Operator  string `json:"operator"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
