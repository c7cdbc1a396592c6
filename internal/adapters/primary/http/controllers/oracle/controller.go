package oracleController

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ryabchinskiymike/taro-bot/internal/domain"
	"github.com/ryabchinskiymike/taro-bot/internal/ports/usecase"
)

type Controller struct {
	OracleService usecase.IOracleService
	Log           *slog.Logger
}

func New(oracleService usecase.IOracleService, log *slog.Logger) *Controller {
	return &Controller{
		OracleService: oracleService,
		Log:           log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/daily-card", c.handleDailyCard)
	router.GET("/history/:tgId", c.handleHistory)
}

// handleDailyCard выдаёт расклад дня: из кэша либо новую генерацию
func (c *Controller) handleDailyCard(ctx *gin.Context) {
	var req DailyCardRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("invalid daily-card request", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.TgID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Telegram ID is required"})
		return
	}

	reading, err := c.OracleService.GetOrCreateReading(ctx.Request.Context(), req.TgID.String(), req.Name)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, reading)
}

// handleHistory возвращает историю раскладов пользователя, новые первыми
func (c *Controller) handleHistory(ctx *gin.Context) {
	tgID := ctx.Param("tgId")

	limit := 0
	if rawLimit := ctx.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	readings, err := c.OracleService.History(ctx.Request.Context(), tgID, limit)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"readings": readings})
}

// respondError маппит доменные ошибки на HTTP-статусы
func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingUserID):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Telegram ID is required"})
	case domain.IsConfigError(err):
		c.Log.Error("configuration error", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
	default:
		c.Log.Error("daily reading failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}
