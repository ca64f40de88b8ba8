package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"studentrecords_backend/internals/configs"
	authModel "studentrecords_backend/internals/features/users/auth/model"
	helper "studentrecords_backend/internals/helpers"
)

// AuthMiddleware is the hard gate in front of every protected operation: it
// runs before any data access, and anonymous requesters get the login
// redirect envelope instead of reaching a handler.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonUnauthorized(c, err.Error())
		}

		// Reject tokens invalidated by logout.
		var blacklisted authModel.TokenBlacklistModel
		if err := db.Where("token = ?", tokenString).First(&blacklisted).Error; err == nil {
			return helper.JsonUnauthorized(c, "Token has been revoked")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}

		secret := configs.JWTSecret
		if secret == "" {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		}); err != nil {
			return helper.JsonUnauthorized(c, "Invalid or expired token")
		}

		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().After(time.Unix(int64(exp), 0)) {
				return helper.JsonUnauthorized(c, "Token expired")
			}
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			return helper.JsonUnauthorized(c, "Invalid or missing user ID")
		}
		role, _ := claims["role"].(string)
		isStaff, _ := claims["is_staff"].(bool)

		c.Locals("user_id", userID)
		c.Locals("userRole", role)
		c.Locals("isStaff", isStaff)
		c.Locals("token", tokenString)

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return parts[1], nil
		}
		return "", errors.New("malformed Authorization header")
	}
	// cookie fallback for browser clients
	if tok := c.Cookies("access_token"); tok != "" {
		return tok, nil
	}
	return "", errors.New("Authentication required")
}
