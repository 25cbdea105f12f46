package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by AuthMiddleware.
const (
	CtxUserID = "userID"
	CtxRole   = "userRole"
	CtxEmail  = "userEmail"
	CtxToken  = "accessToken"
)

// Claims is what we read out of a GoTrue-issued access token.
type Claims struct {
	UserID string
	Email  string
	Role   string // application role from user_metadata, not the postgres role
}

// ParseToken validates an access token against the auth service's JWT secret
// and extracts the identity claims.
func ParseToken(jwtSecret, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("invalid 'sub' claim in token")
	}

	out := &Claims{UserID: sub, Role: "referrer"}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		if role, ok := meta["role"].(string); ok && role != "" {
			out.Role = role
		}
	}
	return out, nil
}

func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get Authorization Header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Println("No auth header found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Println("Auth header format is not Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := ParseToken(jwtSecret, parts[1])
		if err != nil {
			log.Println("Token parsing error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxToken, parts[1])
		c.Next()
	}
}

// RequireRole gates a route group to the given application roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
