package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/auth"
	"github.com/research-hours/backend/internal/config"
	"github.com/research-hours/backend/internal/models"
	"github.com/research-hours/backend/internal/repositories"
	"github.com/research-hours/backend/internal/scope"
)

const (
	CtxUserID = "user_id"
	CtxActor  = "actor"
)

// AuthMiddleware validates the bearer token, loads the user with their admin
// grants and stores the resolved working context for the handlers.
func AuthMiddleware(cfg *config.Config, users *repositories.UserRepo, roles *repositories.RoleRepo, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		user, err := users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "account not found"})
		}
		if !user.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "account is deactivated"})
		}

		grants, err := roles.ListActiveByUser(c.Context(), user.ID)
		if err != nil {
			log.Error("load admin roles", zap.Int64("user_id", user.ID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}

		actor := scope.Resolve(user, grants)
		c.Locals(CtxUserID, user.ID)
		c.Locals(CtxActor, actor)

		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(CtxUserID).(int64)
	return id
}

func GetActor(c *fiber.Ctx) scope.Actor {
	a, _ := c.Locals(CtxActor).(scope.Actor)
	return a
}

// AdminMiddleware requires an effective admin level, at any tier. Plain-user
// mode sessions are rejected even when the account holds grants.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor.EffectiveLevel() == models.LevelNone {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
		}
		return c.Next()
	}
}

// UniversityMiddleware requires university-level capability under the current
// working context.
func UniversityMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if !actor.HasUniversityAccess() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "university admin access required"})
		}
		return c.Next()
	}
}
