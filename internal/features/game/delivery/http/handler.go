package http

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "ton-arcade-backend/internal/common/errors"
	commonmw "ton-arcade-backend/internal/common/middleware"
	"ton-arcade-backend/internal/features/game/models"
	"ton-arcade-backend/internal/features/game/service"
	sessionmw "ton-arcade-backend/internal/features/session/middleware"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	service service.GameService
}

func NewGameHandler(service service.GameService) *GameHandler {
	return &GameHandler{service: service}
}

func (h *GameHandler) RegisterRoutes(router *gin.RouterGroup, requireSession gin.HandlerFunc) {
	games := router.Group("/games")
	{
		games.POST("/score", requireSession, h.SubmitScore)
		games.GET("/leaderboard", h.Leaderboard)
	}
}

// @Summary Submit a game score
// @Tags games
// @Accept json
// @Produce json
// @Param payload body models.ScoreSubmission true "Score"
// @Success 200 {object} models.GameResult
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /games/score [post]
func (h *GameHandler) SubmitScore(c *gin.Context) {
	var submission models.ScoreSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		commonmw.Abort(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Malformed request body"))
		return
	}

	user, ok := sessionmw.CurrentUser(c)
	if !ok {
		commonmw.Abort(c, apperrors.NewUnauthorizedError("session required"))
		return
	}

	result, err := h.service.SubmitScore(c.Request.Context(), user.ID, &submission)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSubmission) {
			commonmw.Abort(c, apperrors.New(apperrors.ErrCodeValidation, "Invalid score submission"))
			return
		}
		commonmw.Abort(c, apperrors.NewDatabaseError("submit score", err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Per-game leaderboard
// @Tags games
// @Produce json
// @Param game query string true "Game name"
// @Param limit query int false "Max entries (default 10)"
// @Success 200 {array} models.LeaderboardEntry
// @Failure 400 {object} map[string]interface{}
// @Router /games/leaderboard [get]
func (h *GameHandler) Leaderboard(c *gin.Context) {
	gameName := c.Query("game")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.service.Leaderboard(c.Request.Context(), gameName, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSubmission) {
			commonmw.Abort(c, apperrors.New(apperrors.ErrCodeValidation, "game query parameter is required"))
			return
		}
		commonmw.Abort(c, apperrors.NewDatabaseError("leaderboard", err))
		return
	}

	if entries == nil {
		entries = []*models.LeaderboardEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
