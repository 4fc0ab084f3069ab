package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/silver-jubilee/backend/internal/service"
	"github.com/silver-jubilee/backend/pkg/logger"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	auth.POST("/google", h.loginGoogle)

	adminAuth := api.Group("/admin/auth")
	adminAuth.POST("/login", h.loginAttemptMiddleware, h.adminLogin)
	adminAuth.POST("/register", h.seedAdmin)
}

type googleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type userResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type googleLoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      userResponse `json:"user"`
}

// @Summary Sign in with Google
// @Tags Auth
// @Description Verifies a Google ID token and issues an internal user token
// @Accept json
// @Produce json
// @Param input body googleLoginRequest true "Google ID token"
// @Success 200 {object} googleLoginResponse
// @Failure 400 {object} messageResponse
// @Failure 401 {object} messageResponse
// @Router /auth/google [post]
func (h *Handler) loginGoogle(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	session, err := h.services.Auth.LoginGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidIdentityToken) {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid Google token")
			return
		}
		logger.Error("google login failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, googleLoginResponse{
		Token:     session.Token,
		ExpiresIn: int64(session.ExpiresIn.Seconds()),
		User: userResponse{
			ID:      session.Identity.Subject,
			Email:   session.Identity.Email,
			Name:    session.Identity.Name,
			Picture: session.Identity.Picture,
		},
	})
}

// loginAttemptMiddleware throttles brute-force attempts against the admin
// password before the handler ever touches the database.
func (h *Handler) loginAttemptMiddleware(c *gin.Context) {
	allowed, err := h.loginLimiter.Allow(c.Request.Context(), c.ClientIP())
	if err != nil {
		logger.Error("login limiter check failed", zap.Error(err))
		// Limiter outage must not lock admins out.
		c.Next()
		return
	}

	if !allowed {
		newErrorResponse(c, http.StatusTooManyRequests, "Too many login attempts. Try again later.")
		return
	}

	c.Next()
}

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type adminLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// @Summary Admin login
// @Tags Auth
// @Description Exchanges admin credentials for a short-lived admin token
// @Accept json
// @Produce json
// @Param input body adminLoginRequest true "Credentials"
// @Success 200 {object} adminLoginResponse
// @Failure 400 {object} messageResponse
// @Failure 401 {object} messageResponse
// @Failure 429 {object} messageResponse
// @Router /admin/auth/login [post]
func (h *Handler) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	session, err := h.services.Auth.LoginAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		logger.Error("admin login failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Server error")
		return
	}

	if err := h.loginLimiter.Reset(c.Request.Context(), c.ClientIP()); err != nil {
		logger.Warn("login limiter reset failed", zap.Error(err))
	}

	// Cookie transport for the admin SPA; the header stays authoritative.
	c.SetCookie(adminTokenCookie, session.Token, int(session.ExpiresIn.Seconds()), "/", "", true, true)

	c.JSON(http.StatusOK, adminLoginResponse{
		Token:     session.Token,
		ExpiresIn: int64(session.ExpiresIn.Seconds()),
	})
}

type seedAdminRequest struct {
	Username string `json:"username" binding:"required,min=3,max=120"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// @Summary Seed an admin principal
// @Tags Auth
// @Description Creates an admin account. Disabled unless the setup key is configured and presented.
// @Accept json
// @Produce json
// @Param X-Setup-Key header string true "Setup key"
// @Param input body seedAdminRequest true "Credentials"
// @Success 201 {object} messageResponse
// @Failure 400 {object} messageResponse
// @Failure 403 {object} messageResponse
// @Router /admin/auth/register [post]
func (h *Handler) seedAdmin(c *gin.Context) {
	setupKey := h.config.Auth.AdminSetupKey
	if setupKey == "" {
		newErrorResponse(c, http.StatusForbidden, "Admin registration disabled")
		return
	}
	if c.GetHeader("X-Setup-Key") != setupKey {
		newErrorResponse(c, http.StatusForbidden, "Forbidden")
		return
	}

	var req seedAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	if err := h.services.Auth.SeedAdmin(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrAdminAlreadyExists) {
			newErrorResponse(c, http.StatusBadRequest, "Admin already exists")
			return
		}
		logger.Error("seed admin failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusCreated, messageResponse{Message: "Admin registered successfully"})
}
