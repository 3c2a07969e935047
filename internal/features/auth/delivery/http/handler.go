package http

import (
	"errors"
	"net/http"
	"time"

	apperrors "ton-arcade-backend/internal/common/errors"
	commonmw "ton-arcade-backend/internal/common/middleware"
	"ton-arcade-backend/internal/features/auth/models"
	authservice "ton-arcade-backend/internal/features/auth/service"
	"ton-arcade-backend/internal/features/auth/telegram"
	"ton-arcade-backend/internal/features/auth/wallet"
	sessionmw "ton-arcade-backend/internal/features/session/middleware"
	sessionservice "ton-arcade-backend/internal/features/session/service"
	usermodels "ton-arcade-backend/internal/features/user/models"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth     authservice.Service
	sessions sessionservice.Service

	// secureCookie is off in debug so the widget works over plain http
	// during local development.
	secureCookie bool
}

func NewAuthHandler(auth authservice.Service, sessions sessionservice.Service, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, secureCookie: secureCookie}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, requireSession gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/telegram", h.loginWidget)
		auth.POST("/telegram/webapp", h.loginWebApp)
		auth.POST("/wallet", h.loginWallet)
		auth.GET("/me", requireSession, h.me)
		auth.POST("/logout", h.logout)
	}
}

// @Summary Login via Telegram widget
// @Description Verifies the login widget field set and issues a session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body models.TelegramLoginRequest true "Widget field set"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} map[string]interface{} "Malformed body"
// @Failure 401 {object} map[string]interface{} "Invalid signature or stale auth_date"
// @Router /auth/telegram [post]
func (h *AuthHandler) loginWidget(c *gin.Context) {
	var req models.TelegramLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		commonmw.Abort(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Malformed request body"))
		return
	}

	user, created, err := h.auth.LoginWidget(c.Request.Context(), &req)
	if err != nil {
		commonmw.Abort(c, loginError(err))
		return
	}

	h.finishLogin(c, user, created)
}

// @Summary Login via Telegram Mini App init data
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body models.WebAppLoginRequest true "Raw initData string"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} map[string]interface{}
// @Router /auth/telegram/webapp [post]
func (h *AuthHandler) loginWebApp(c *gin.Context) {
	var req models.WebAppLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		commonmw.Abort(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Malformed request body"))
		return
	}

	user, created, err := h.auth.LoginWebApp(c.Request.Context(), req.InitData)
	if err != nil {
		commonmw.Abort(c, loginError(err))
		return
	}

	h.finishLogin(c, user, created)
}

// @Summary Login via TON wallet address
// @Description Wallet connection is an identity declaration, not proof of key
// @Description ownership: only the address format is checked.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body models.WalletLoginRequest true "Wallet address pair"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} map[string]interface{} "Address fails the format policy"
// @Router /auth/wallet [post]
func (h *AuthHandler) loginWallet(c *gin.Context) {
	var req models.WalletLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		commonmw.Abort(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Malformed request body"))
		return
	}

	user, created, err := h.auth.LoginWallet(c.Request.Context(), &req)
	if err != nil {
		commonmw.Abort(c, loginError(err))
		return
	}

	h.finishLogin(c, user, created)
}

// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} usermodels.User
// @Failure 401 {object} map[string]interface{} "Missing, invalid or expired session"
// @Router /auth/me [get]
func (h *AuthHandler) me(c *gin.Context) {
	user, ok := sessionmw.CurrentUser(c)
	if !ok {
		commonmw.Abort(c, apperrors.NewUnauthorizedError("session required"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Logout
// @Description Revokes the server-side session where the variant supports it
// @Description and clears the cookie. Always succeeds.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) logout(c *gin.Context) {
	if credential, ok := sessionmw.ExtractCredential(c); ok {
		// Best effort: an unknown or already-expired credential is fine.
		_ = h.sessions.Revoke(c.Request.Context(), credential)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionmw.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) finishLogin(c *gin.Context, user *usermodels.User, created bool) {
	credential, expiresAt, err := h.sessions.Issue(c.Request.Context(), string(user.ExternalID()))
	if err != nil {
		commonmw.Abort(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to issue session"))
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionmw.CookieName, credential, maxAge, "/", "", h.secureCookie, true)

	message := "Login successful"
	if created {
		message = "User registered"
	}
	c.JSON(http.StatusOK, models.LoginResponse{Message: message, User: user})
}

func loginError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, telegram.ErrInvalidSignature):
		return apperrors.New(apperrors.ErrCodeInvalidSignature, "Telegram signature mismatch")
	case errors.Is(err, telegram.ErrExpired):
		return apperrors.New(apperrors.ErrCodeExpired, "Authentication data expired")
	case errors.Is(err, telegram.ErrNoBotToken):
		return apperrors.New(apperrors.ErrCodeInternal, "Server configuration error")
	case errors.Is(err, wallet.ErrInvalidFormat):
		return apperrors.New(apperrors.ErrCodeInvalidWallet, "Wallet address fails format policy")
	case errors.Is(err, wallet.ErrSignatureRequired):
		return apperrors.New(apperrors.ErrCodeSignatureRequired, "Wallet signature verification required")
	default:
		return apperrors.NewDatabaseError("login", err)
	}
}
