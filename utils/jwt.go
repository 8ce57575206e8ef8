package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"shelfmind_backend/models"
)

// tokenTTL reads JWT_EXPIRES_IN (seconds) with a 24h default.
func tokenTTL() time.Duration {
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 24 * time.Hour
}

// GenerateToken issues an HS256 access token for a user. Store
// assignment rides in the claims so handlers can resolve the caller's
// workspace without a user lookup.
func GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.Email,
		"user_id":  user.ID,
		"role":     user.Role,
		"store_id": user.StoreID,
		"exp":      time.Now().Add(tokenTTL()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// ParseToken verifies a token string and returns its claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// AuthMiddleware guards routes with a Bearer token and exposes the
// caller's identity via locals.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "No token provided",
		})
	}

	var tokenString string
	fmt.Sscanf(authHeader, "Bearer %s", &tokenString)

	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Token format is invalid",
		})
	}

	claims, err := ParseToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Could not validate credentials",
		})
	}

	// Check token expiration
	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().Unix() > int64(exp) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Token has expired",
			})
		}
	}

	c.Locals("user_id", claims["user_id"])
	c.Locals("role", claims["role"])
	c.Locals("store_id", claims["store_id"])

	return c.Next()
}

// RequireRole rejects callers whose token carries a different role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("role") != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"detail": fmt.Sprintf("Access denied. Required role: %s", role),
			})
		}
		return c.Next()
	}
}
