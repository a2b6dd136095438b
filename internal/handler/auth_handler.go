package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/middleware"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/response"
	"github.com/uniak/teaching-backend/internal/service"
	"github.com/uniak/teaching-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log.With().Str("component", "handler").Str("resource", "auth").Logger(),
	}
}

// Register godoc
// POST /api/v1/auth/register/
// Creates a regular account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	u, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

// AdminLogin godoc
// POST /api/v1/auth/admin-login/
// Validates staff credentials and returns an access/refresh token pair.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	u, pair, err := h.authService.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		writeError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access":  pair.Access,
		"refresh": pair.Refresh,
		"user": gin.H{
			"id":           u.ID,
			"username":     u.Username,
			"email":        u.Email,
			"is_staff":     u.IsStaff,
			"is_superuser": u.IsSuperuser,
		},
	})
}

// Refresh godoc
// POST /api/v1/auth/token/refresh/
// Exchanges a refresh token for a new pair. The old refresh token is revoked.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		h.failToken(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair)
}

// Logout godoc
// POST /api/v1/auth/logout/
// Revokes a refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req model.RefreshRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.Refresh); err != nil {
		h.failToken(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Profile godoc
// GET /api/v1/auth/profile/
// Returns the authenticated user.
func (h *AuthHandler) Profile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	u, err := h.authService.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// CheckAdmin godoc
// GET /api/v1/auth/check-admin/
func (h *AuthHandler) CheckAdmin(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"is_admin":     claims.IsStaff,
		"is_superuser": claims.IsSuperuser,
		"username":     claims.Username,
	})
}

func (h *AuthHandler) failToken(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTokenRevoked):
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRevoked)
	case errors.Is(err, service.ErrAccountDisabled):
		response.Fail(c, http.StatusUnauthorized, response.ErrAccountDisabled)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrWrongTokenType),
		errors.Is(err, service.ErrTokenInvalid):
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
	default:
		writeError(c, h.log, err)
	}
}
