package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/jwt"
)

// Claves de c.Locals que deja AuthMiddleware.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// SessionChecker confirma contra la base de datos que el usuario del token sigue activo
// y con el rol que trae el token.
type SessionChecker interface {
	CheckSession(ctx context.Context, userID, role string) error
}

// AuthMiddleware valida el Bearer token, revisa la sesión y deja user_id y role en c.Locals.
//   - 401 MISSING_TOKEN   → sin header o token vacío.
//   - 401 INVALID_TOKEN   → formato incorrecto, firma inválida o expirado.
//   - 401 MISSING_ROLE    → el token no trae rol.
//   - 401 SESSION_REVOKED → usuario eliminado, desactivado o con otro rol desde el login.
func AuthMiddleware(jwtSecret string, sessions SessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, code, msg := bearerToken(c.Get(fiber.HeaderAuthorization))
		if code != "" {
			return deny(c, fiber.StatusUnauthorized, code, msg)
		}
		userID, role, err := jwt.Parse(jwtSecret, token)
		if err != nil || userID == "" {
			return deny(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado")
		}
		if role == "" {
			return deny(c, fiber.StatusUnauthorized, "MISSING_ROLE", "el token no incluye rol")
		}
		if err := sessions.CheckSession(c.Context(), userID, role); err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return deny(c, fiber.StatusUnauthorized, "SESSION_REVOKED", err.Error())
			}
			return respondError(c, err)
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

func bearerToken(header string) (token, code, msg string) {
	if header == "" {
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	scheme, rest, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(rest)
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// RequireRole autoriza solo a los roles indicados. Va después de AuthMiddleware.
//   - 401 MISSING_ROLE → el token no trae rol.
//   - 403 FORBIDDEN    → el rol no está permitido.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		switch {
		case role == "":
			return deny(c, fiber.StatusUnauthorized, "MISSING_ROLE", "el token no incluye rol")
		case !allowed[role]:
			return deny(c, fiber.StatusForbidden, "FORBIDDEN", "el rol '"+role+"' no tiene acceso a este recurso")
		}
		return c.Next()
	}
}

func deny(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// GetUserID usuario autenticado (vacío antes de AuthMiddleware).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole rol del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// Actor identidad con la que los casos de uso ejecutan la petición.
func Actor(c *fiber.Ctx) entity.Actor {
	return entity.Actor{UserID: GetUserID(c), Role: GetRole(c)}
}
