package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/domain/repository"
)

const (
	// MinPasswordLength longitud mínima de password en el registro.
	MinPasswordLength = 6
	// maxPasswordBytes límite de bcrypt.
	maxPasswordBytes = 72
)

// RegisterInput datos crudos de registro.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // vacío → entity.DefaultRole
}

// CredentialStore dueño de las identidades y del chequeo one-way de password.
type CredentialStore struct {
	users  repository.UserRepository
	hasher PasswordHasher
	now    func() time.Time
	// dummyHash se compara cuando el email no existe para que ambos caminos cuesten lo mismo.
	dummyHash string
}

// NewCredentialStore construye el almacén de credenciales.
func NewCredentialStore(users repository.UserRepository, hasher PasswordHasher) (*CredentialStore, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	return &CredentialStore{users: users, hasher: hasher, now: time.Now, dummyHash: dummy}, nil
}

// NormalizeEmail recorta espacios y pasa a minúsculas, igual que el índice lower(email).
// No usa case folding: "ß" o las ligaduras cambiarían el buzón.
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// Register valida, hashea el password y persiste la identidad.
// Errores: domain.ErrValidation (envuelto con el motivo) o domain.ErrDuplicateIdentity.
func (s *CredentialStore) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrValidation)
	}
	email := NormalizeEmail(in.Email)
	if !govalidator.IsEmail(email) {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrValidation)
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrValidation, MinPasswordLength)
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password demasiado largo", domain.ErrValidation)
	}
	role, ok := entity.ParseRole(strings.TrimSpace(in.Role))
	if !ok {
		return nil, fmt.Errorf("%w: rol inválido", domain.ErrValidation)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: buscar email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateIdentity
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	now := s.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// El índice único cubre la carrera entre el chequeo previo y el INSERT.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// VerifyCredentials devuelve la identidad si email y password coinciden.
// Email inexistente y password incorrecto producen el mismo domain.ErrInvalidCredentials.
func (s *CredentialStore) VerifyCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("login: buscar email: %w", err)
	}
	if user == nil {
		_ = s.hasher.Compare(s.dummyHash, password)
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
