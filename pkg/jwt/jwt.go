package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL vigencia de un token de sesión.
const DefaultTTL = 8 * time.Hour

var (
	// ErrInvalidToken firma incorrecta, estructura malformada, algoritmo inesperado o claims incompletos.
	ErrInvalidToken = errors.New("jwt: token inválido")
	// ErrExpiredToken el instante actual es igual o posterior a exp.
	ErrExpiredToken = errors.New("jwt: token expirado")
)

// Identity datos de la identidad que viajan en el token.
type Identity struct {
	UserID string
	Email  string
	Role   string
	Name   string
}

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se incluyen Role y Name para que el middleware RBAC y /me no consulten la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"` // "manager" | "store_keeper"
	Name   string `json:"name"`
}

// Identity devuelve los datos de identidad embebidos.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, Role: c.Role, Name: c.Name}
}

// Manager emite y verifica tokens HS256. Inmutable tras construirse; seguro para uso concurrente.
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Option configura un Manager.
type Option func(*Manager)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIssuer fija el claim iss y lo exige al verificar.
func WithIssuer(issuer string) Option {
	return func(m *Manager) { m.issuer = issuer }
}

// NewManager construye el servicio de tokens. El secret es obligatorio; ttl <= 0 usa DefaultTTL.
func NewManager(secret string, ttl time.Duration, opts ...Option) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// TTL vigencia configurada.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue genera un token firmado con exp = iat + TTL.
func (m *Manager) Issue(id Identity) (string, error) {
	if id.UserID == "" || id.Role == "" {
		return "", fmt.Errorf("jwt: identidad incompleta")
	}
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: id.UserID,
		Email:  id.Email,
		Role:   id.Role,
		Name:   id.Name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, nil
}

// Verify valida firma y vigencia y devuelve los claims.
// Retorna ErrExpiredToken si ya venció y ErrInvalidToken en cualquier otro fallo.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" || claims.Role == "" {
		return nil, fmt.Errorf("%w: claims incompletos", ErrInvalidToken)
	}
	return claims, nil
}
