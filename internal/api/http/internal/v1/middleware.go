package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/silver-jubilee/backend/internal/domain"
	"github.com/silver-jubilee/backend/pkg/auth"
	"github.com/silver-jubilee/backend/pkg/logger"
)

const (
	authorizationHeader = "Authorization"
	adminTokenCookie    = "adminToken"

	identityCtx = "identity"
	adminCtx    = "adminUsername"
)

// userIdentityMiddleware resolves the caller's external identity from a
// user-space bearer token. There is no header-based fallback: an identity
// is only ever trusted when its token verifies.
func (h *Handler) userIdentityMiddleware(c *gin.Context) {
	token, err := bearerToken(c)
	if err != nil {
		newErrorResponse(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	claims, err := h.userTokens.Parse(token)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			logger.Debug("parse user token failed", zap.Error(err))
		}
		newErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	if claims.Role != auth.RoleUser {
		newErrorResponse(c, http.StatusForbidden, "User access required")
		return
	}

	c.Set(identityCtx, domain.Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	})
	c.Next()
}

// adminIdentityMiddleware gates mutation endpoints to admin principals.
// The token is taken from the authorization header, falling back to the
// admin cookie the login endpoint sets.
func (h *Handler) adminIdentityMiddleware(c *gin.Context) {
	token, err := bearerToken(c)
	if err != nil {
		if cookie, cookieErr := c.Cookie(adminTokenCookie); cookieErr == nil && cookie != "" {
			token = cookie
		} else {
			c.Header("WWW-Authenticate", `Bearer realm="admin"`)
			newErrorResponse(c, http.StatusUnauthorized, "Admin token missing")
			return
		}
	}

	claims, err := h.adminTokens.Parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			newErrorResponse(c, http.StatusUnauthorized, "Admin token expired")
			return
		}
		logger.Debug("parse admin token failed", zap.Error(err))
		newErrorResponse(c, http.StatusUnauthorized, "Invalid admin token")
		return
	}

	if claims.Role != auth.RoleAdmin {
		newErrorResponse(c, http.StatusForbidden, "Forbidden: insufficient privileges")
		return
	}

	c.Set(adminCtx, claims.Subject)
	c.Next()
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return "", errors.New("empty auth header")
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return "", errors.New("invalid auth header")
	}

	if len(headerParts[1]) == 0 {
		return "", errors.New("token is empty")
	}

	return headerParts[1], nil
}

func getIdentity(c *gin.Context) (domain.Identity, error) {
	value, ok := c.Get(identityCtx)
	if !ok {
		return domain.Identity{}, errors.New("identity not found in context")
	}

	identity, ok := value.(domain.Identity)
	if !ok {
		return domain.Identity{}, errors.New("identity has wrong type")
	}

	return identity, nil
}

func getAdminUsername(c *gin.Context) (string, error) {
	value, ok := c.Get(adminCtx)
	if !ok {
		return "", errors.New("admin username not found in context")
	}

	username, ok := value.(string)
	if !ok {
		return "", errors.New("admin username has wrong type")
	}

	return username, nil
}
