package http

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "ton-arcade-backend/internal/common/errors"
	commonmw "ton-arcade-backend/internal/common/middleware"
	authmodels "ton-arcade-backend/internal/features/auth/models"
	"ton-arcade-backend/internal/features/auth/wallet"
	sessionmw "ton-arcade-backend/internal/features/session/middleware"
	userrepo "ton-arcade-backend/internal/features/user/repository"
	"ton-arcade-backend/internal/features/user/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, requireSession gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.GET("/:id", h.GetUser)
	}

	user := router.Group("/user")
	user.Use(requireSession)
	{
		user.PUT("/wallet", h.UpdateWallet)
	}
}

// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		commonmw.Abort(c, apperrors.New(apperrors.ErrCodeBadRequest, "Invalid user ID format"))
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			commonmw.Abort(c, apperrors.NewUserNotFoundError(id))
			return
		}
		commonmw.Abort(c, apperrors.NewDatabaseError("get user", err))
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Update wallet
// @Description Binds a TON wallet to the authenticated user after validating
// @Description the address pair against the configured format policy.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body authmodels.WalletLoginRequest true "Wallet address pair"
// @Success 200 {object} models.User "Updated user"
// @Failure 400 {object} map[string]interface{} "Address fails the format policy"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 409 {object} map[string]interface{} "Wallet bound to another user"
// @Router /user/wallet [put]
func (h *UserHandler) UpdateWallet(c *gin.Context) {
	var req authmodels.WalletLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		commonmw.Abort(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Malformed request body"))
		return
	}

	current, ok := sessionmw.CurrentUser(c)
	if !ok {
		commonmw.Abort(c, apperrors.NewUnauthorizedError("session required"))
		return
	}

	user, err := h.service.UpdateWallet(c.Request.Context(), current.ExternalID(), req.WalletRaw, req.WalletUserFriendly)
	if err != nil {
		commonmw.Abort(c, updateWalletError(err))
		return
	}

	c.JSON(http.StatusOK, user)
}

func updateWalletError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, wallet.ErrInvalidFormat):
		return apperrors.New(apperrors.ErrCodeInvalidWallet, "Wallet address fails format policy")
	case errors.Is(err, wallet.ErrSignatureRequired):
		return apperrors.New(apperrors.ErrCodeSignatureRequired, "Wallet signature verification required")
	case errors.Is(err, userrepo.ErrWalletTaken):
		return apperrors.New(apperrors.ErrCodeWalletTaken, "Wallet already bound to another user")
	case errors.Is(err, service.ErrUserNotFound):
		return apperrors.NewUserNotFoundError(nil)
	default:
		return apperrors.NewDatabaseError("update wallet", err)
	}
}
