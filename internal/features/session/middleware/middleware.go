package middleware

import (
	"errors"
	"strings"

	apperrors "ton-arcade-backend/internal/common/errors"
	commonmw "ton-arcade-backend/internal/common/middleware"
	sessionservice "ton-arcade-backend/internal/features/session/service"
	usermodels "ton-arcade-backend/internal/features/user/models"
	userservice "ton-arcade-backend/internal/features/user/service"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the session cookie set on login and cleared on logout.
	CookieName = "session"

	ContextUserKey       = "user"
	ContextExternalIDKey = "external_id"
)

// ExtractCredential pulls the session credential from the cookie or from an
// Authorization bearer header. Cookie wins when both are present.
func ExtractCredential(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie, true
	}
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			return token, true
		}
	}
	return "", false
}

// RequireSession resolves the credential, loads the user record and puts both
// the record and its external id into the gin context. Every failure is a 401
// with a stable reason code — a request never proceeds "logged in as nobody".
func RequireSession(sessions sessionservice.Service, users userservice.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential, ok := ExtractCredential(c)
		if !ok {
			commonmw.Abort(c, apperrors.NewUnauthorizedError("session credential required"))
			return
		}

		externalID, err := sessions.Resolve(c.Request.Context(), credential)
		if err != nil {
			commonmw.Abort(c, resolveError(err))
			return
		}

		user, err := users.GetByExternalID(c.Request.Context(), usermodels.ExternalID(externalID))
		if err != nil {
			if errors.Is(err, userservice.ErrUserNotFound) {
				commonmw.Abort(c, apperrors.New(apperrors.ErrCodeUnauthorized, "Unknown identity"))
				return
			}
			commonmw.Abort(c, apperrors.NewDatabaseError("load session user", err))
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextExternalIDKey, user.ExternalID())
		c.Next()
	}
}

// CurrentUser returns the user record placed by RequireSession.
func CurrentUser(c *gin.Context) (*usermodels.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*usermodels.User)
	return user, ok
}

func resolveError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, sessionservice.ErrSessionExpired):
		return apperrors.New(apperrors.ErrCodeExpired, "Session expired")
	case errors.Is(err, sessionservice.ErrSessionNotFound):
		return apperrors.New(apperrors.ErrCodeSessionNotFound, "Session not found")
	case errors.Is(err, sessionservice.ErrInvalidToken):
		return apperrors.New(apperrors.ErrCodeInvalidSignature, "Invalid session token")
	default:
		return apperrors.NewCacheError("resolve session", err)
	}
}
