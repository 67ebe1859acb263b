package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Requester is the identity a handler hands to the reservation core.
type Requester struct {
	DNI  string
	Name string
	Role string
}

func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is empty"})
			c.Abort()
			return
		}

		claims, err := ValidateToken(tokenString, secret)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or malformed token"})
			}
			c.Abort()
			return
		}

		c.Set("requester_dni", claims.DNI)
		c.Set("requester_name", claims.Name)
		c.Set("requester_role", claims.Role)

		c.Next()
	}
}

func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("requester_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Requester role not found"})
			c.Abort()
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != requiredRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetRequester(c *gin.Context) (Requester, bool) {
	dni, ok := c.Get("requester_dni")
	if !ok {
		return Requester{}, false
	}

	dniStr, ok := dni.(string)
	if !ok || dniStr == "" {
		return Requester{}, false
	}

	name, _ := c.Get("requester_name")
	nameStr, _ := name.(string)
	role, _ := c.Get("requester_role")
	roleStr, _ := role.(string)

	return Requester{DNI: dniStr, Name: nameStr, Role: roleStr}, true
}
