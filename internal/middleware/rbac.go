package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/response"
)

// Require guards a route with a permission tier. Public routes get a no-op
// handler; the other tiers authenticate first (401) and then check the
// identity's flags (403).
func Require(auth TokenValidator, tier model.Tier) gin.HandlerFunc {
	if tier == model.TierPublic {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if !authenticate(c, auth) {
			return
		}

		claims := GetClaims(c)
		if claims == nil || !tier.Allows(true, claims.IsStaff) {
			response.AbortFail(c, http.StatusForbidden, response.ErrStaffAccessOnly)
			return
		}
		c.Next()
	}
}
