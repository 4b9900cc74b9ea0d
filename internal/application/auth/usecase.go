package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/domain/repository"
	"github.com/jhoicas/commodities-api/pkg/jwt"
)

// TokenIssuer emite tokens de sesión (lo implementa *jwt.Manager).
type TokenIssuer interface {
	Issue(id jwt.Identity) (string, error)
}

// AuthUseCase casos de uso de autenticación: registro, login y usuario actual.
type AuthUseCase struct {
	creds  *CredentialStore
	users  repository.UserRepository
	tokens TokenIssuer
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(creds *CredentialStore, users repository.UserRepository, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{creds: creds, users: users, tokens: tokens}
}

// Register crea la identidad y devuelve un token ya emitido para ella.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	user, err := uc.creds.Register(ctx, RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.creds.VerifyCredentials(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Me devuelve el usuario del token. domain.ErrNotFound si la identidad ya no existe.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return ToUserResponse(user), nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := uc.tokens.Issue(jwt.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role.String(),
		Name:   user.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// ToUserResponse proyección pública; el hash nunca sale de aquí.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role.String(),
		Name:  u.Name,
	}
}
