package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dany-shop/internal/application/dto"
	"github.com/jhoicas/dany-shop/internal/domain"
	"github.com/jhoicas/dany-shop/pkg/jwt"
)

// Roles de operador.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Operator credenciales del único operador configurado para la tienda.
type Operator struct {
	Name         string
	PasswordHash string // hash bcrypt
	Role         string
}

// AuthUseCase login del operador de mostrador.
type AuthUseCase struct {
	operator Operator
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operator Operator, jwtCfg JWTConfig) *AuthUseCase {
	if operator.Role == "" {
		operator.Role = RoleAdmin
	}
	return &AuthUseCase{operator: operator, jwtCfg: jwtCfg}
}

// Login verifica operador/password y genera el JWT.
// Sin hash configurado el login queda deshabilitado (ErrUnauthorized).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.operator.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(in.Operator), []byte(uc.operator.Name)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.operator.Name, uc.operator.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Operator:  uc.operator.Name,
		Role:      uc.operator.Role,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
