package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthHandler serves account endpoints
type AuthHandler struct {
	authService service.IAuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the auth routes on router
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.AuthMiddleware(h.authService), h.Me)
		auth.PUT("/me", middleware.AuthMiddleware(h.authService), h.UpdateMe)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Account created", AuthResponse{User: user, Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, AuthResponse{User: user, Token: token})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, user)
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req types.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Profile updated", user)
}
