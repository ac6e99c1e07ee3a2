package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// parseBearerToken extracts and verifies the JWT from the Authorization
// header. Returns the claims or an error message suitable for a 401.
func parseBearerToken(c *gin.Context, jwtSecret string) (jwt.MapClaims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "missing authorization header"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "invalid authorization header format"
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !parsedToken.Valid {
		return nil, "invalid token"
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return nil, "invalid token type"
	}

	return claims, ""
}

func setUserContext(c *gin.Context, claims jwt.MapClaims) string {
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "invalid user ID in token"
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "invalid UUID format"
	}

	c.Set("userID", userID)
	if username, ok := claims["username"].(string); ok {
		c.Set("username", username)
	}

	return ""
}

// AuthMiddleware rejects requests without a valid access token and puts
// the authenticated userID into the gin context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, errMsg := parseBearerToken(c, jwtSecret)
		if errMsg != "" {
			c.JSON(401, gin.H{"error": errMsg})
			c.Abort()
			return
		}

		if errMsg := setUserContext(c, claims); errMsg != "" {
			c.JSON(401, gin.H{"error": errMsg})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth populates the user context when a valid token is present
// but never rejects the request. Public reads (feed, article, profile)
// use it so responses can carry viewer-specific flags like "favorited"
// and "following".
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, errMsg := parseBearerToken(c, jwtSecret); errMsg == "" {
			_ = setUserContext(c, claims)
		}

		c.Next()
	}
}

// CurrentUserID reads the authenticated user from the context.
// ok = false on anonymous requests.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := v.(uuid.UUID)
	return userID, ok
}
