package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func gotrueClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "6f1b0a4e-9c1d-4f7a-8d2e-000000000001",
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"user_metadata": map[string]interface{}{
			"role": role,
		},
	}
}

func TestParseToken(t *testing.T) {
	tokenString := signToken(t, testSecret, gotrueClaims("business"))

	claims, err := ParseToken(testSecret, tokenString)

	require.NoError(t, err)
	assert.Equal(t, "6f1b0a4e-9c1d-4f7a-8d2e-000000000001", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "business", claims.Role)
}

func TestParseTokenDefaultsRole(t *testing.T) {
	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"sub": "u-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := ParseToken(testSecret, tokenString)

	require.NoError(t, err)
	assert.Equal(t, "referrer", claims.Role)
}

func TestParseTokenRejections(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		tokenString := signToken(t, "other-secret", gotrueClaims("referrer"))
		_, err := ParseToken(testSecret, tokenString)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := gotrueClaims("referrer")
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		tokenString := signToken(t, testSecret, claims)
		_, err := ParseToken(testSecret, tokenString)
		assert.Error(t, err)
	})

	t.Run("missing sub", func(t *testing.T) {
		tokenString := signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := ParseToken(testSecret, tokenString)
		assert.Error(t, err)
	})
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(CtxUserID),
			"role":    c.GetString(CtxRole),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := protectedRouter()

	t.Run("valid token passes claims through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, gotrueClaims("admin")))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"admin"`)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter(RequireRole("business", "admin"))

	t.Run("allowed role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, gotrueClaims("business")))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbidden role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, gotrueClaims("referrer")))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
