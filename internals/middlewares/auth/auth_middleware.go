// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"claimcenter_backend/internals/configs"
	helper "claimcenter_backend/internals/helpers"
	authHelper "claimcenter_backend/internals/helpers/auth"
)

const clockSkew = 30 * time.Second

type Config struct {
	Secret string
	// IsRevoked reports whether the raw token was blacklisted on logout.
	IsRevoked func(ctx context.Context, raw string) (bool, error)
	// IsActive reports whether the user may still sign in.
	IsActive func(ctx context.Context, userID uuid.UUID) (bool, error)
	Now      func() time.Time
}

// AuthMiddleware wires AuthJWT to the database: blacklist + active user.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return AuthJWT(Config{
		Secret:    configs.JWTSecret,
		IsRevoked: authHelper.BlacklistChecker(db, configs.JWTSecret),
		IsActive:  activeUserChecker(db),
	})
}

// AuthJWT verifies the bearer token and hydrates the identity locals read
// by authHelper.ResolveIdentity.
func AuthJWT(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		if cfg.Secret == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		now := time.Now()
		if cfg.Now != nil {
			now = cfg.Now()
		}
		sub, _, err := authHelper.ParseAccessToken(cfg.Secret, raw, now, clockSkew)
		if err != nil {
			log.Printf("[AUTH] %s %s: %v", c.Method(), c.OriginalURL(), err)
			if errors.Is(err, authHelper.ErrTokenExpired) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
			}
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid token")
		}

		ctx := c.UserContext()
		if cfg.IsRevoked != nil {
			revoked, err := cfg.IsRevoked(ctx, raw)
			if err != nil {
				log.Printf("[ERROR] blacklist check: %v", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if revoked {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			}
		}
		if cfg.IsActive != nil {
			active, err := cfg.IsActive(ctx, sub.UserID)
			if err != nil {
				log.Printf("[ERROR] active user check: %v", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if !active {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found or inactive")
			}
		}

		c.Locals(authHelper.LocUserID, sub.UserID.String())
		c.Locals(authHelper.LocRole, sub.Role)
		c.Locals(authHelper.LocUserName, sub.Name)
		c.Locals(authHelper.LocRawToken, raw)
		if sub.BranchID != nil {
			c.Locals(authHelper.LocBranchID, sub.BranchID.String())
		}
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - No token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Empty token")
	}
	return tok, nil
}

func activeUserChecker(db *gorm.DB) func(ctx context.Context, userID uuid.UUID) (bool, error) {
	return func(ctx context.Context, userID uuid.UUID) (bool, error) {
		var active bool
		err := db.WithContext(ctx).Raw(`
			SELECT EXISTS (
			  SELECT 1 FROM users
			  WHERE user_id = ? AND user_is_active = TRUE AND user_deleted_at IS NULL
			)
		`, userID).Scan(&active).Error
		return active, err
	}
}
