package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/commodities-api/internal/domain/access"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/pkg/jwt"
)

// Locals keys para los datos de la sesión en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalClaims = "claims"
)

// TokenVerifier valida un token de sesión. Lo implementa *jwt.Manager.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// AuthMiddleware valida el Bearer Token y carga las claims en c.Locals.
// Token ausente, inválido y expirado son errores distintos; todos responden 401.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return newTokenError(CodeMissingToken, "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return newTokenError(CodeInvalidToken, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return newTokenError(CodeMissingToken, "token vacío")
		}
		claims, err := verifier.Verify(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				return newTokenError(CodeExpiredToken, "token expirado")
			}
			return newTokenError(CodeInvalidToken, "token inválido")
		}
		c.Locals(LocalClaims, claims)
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, entity.Role(claims.Role))
		return c.Next()
	}
}

// RequireOperation autoriza la operación op con la tabla de permisos. Debe usarse DESPUÉS de AuthMiddleware.
func RequireOperation(policy access.Policy, op access.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := policy.Authorize(GetRole(c), op); err != nil {
			return err
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del token; vacío si no hay sesión.
func GetRole(c *fiber.Ctx) entity.Role {
	r, _ := c.Locals(LocalRole).(entity.Role)
	return r
}

// GetClaims devuelve las claims completas del token (nil si no hay sesión).
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}
