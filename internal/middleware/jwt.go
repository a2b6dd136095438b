package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/uniak/teaching-backend/internal/response"
	"github.com/uniak/teaching-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
)

// TokenValidator checks access tokens. *service.AuthService implements it.
type TokenValidator interface {
	ValidateAccessToken(tokenStr string) (*service.Claims, error)
}

// authenticate stores the caller's claims in c, or aborts with 401.
func authenticate(c *gin.Context, auth TokenValidator) bool {
	tokenStr := bearerToken(c)
	if tokenStr == "" {
		response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return false
	}

	claims, err := auth.ValidateAccessToken(tokenStr)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenExpired)
			return false
		}
		response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return false
	}

	c.Set(ContextKeyClaims, claims)
	return true
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
