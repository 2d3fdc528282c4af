package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/handler/dto"
	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/service"
)

// CharacterHandler обрабатывает запросы, связанные с персонажем
type CharacterHandler struct {
	progressionService *service.ProgressionService
}

// NewCharacterHandler создает новый обработчик персонажа
func NewCharacterHandler(progressionService *service.ProgressionService) *CharacterHandler {
	return &CharacterHandler{progressionService: progressionService}
}

// GetCharacter возвращает текущий снимок персонажа
func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	character, err := h.progressionService.GetCharacter(c.Request.Context())
	if err != nil {
		h.handleCharacterError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCharacterResponse(character))
}

// RebuildCharacter пересчитывает персонажа с нуля по журналу результатов
func (h *CharacterHandler) RebuildCharacter(c *gin.Context) {
	character, err := h.progressionService.RebuildCharacter(time.Now())
	if err != nil {
		h.handleCharacterError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCharacterResponse(character))
}

// AchievementRequest представляет запрос на разблокировку достижения или испытания
type AchievementRequest struct {
	ID string `json:"id" binding:"required,min=1,max=100"`
}

// UnlockAchievement разблокирует достижение. Повторная выдача — no-op.
func (h *CharacterHandler) UnlockAchievement(c *gin.Context) {
	var req AchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unlocked, err := h.progressionService.UnlockAchievement(req.ID)
	if err != nil {
		h.handleCharacterError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       req.ID,
		"unlocked": unlocked, // false = уже было разблокировано
	})
}

// CompleteChallenge отмечает испытание завершенным. Повторная отметка — no-op.
func (h *CharacterHandler) CompleteChallenge(c *gin.Context) {
	var req AchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	completed, err := h.progressionService.CompleteChallenge(req.ID)
	if err != nil {
		h.handleCharacterError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        req.ID,
		"completed": completed,
	})
}

// handleCharacterError обрабатывает ошибки от сервиса прогрессии и отправляет соответствующий HTTP ответ
func (h *CharacterHandler) handleCharacterError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in CharacterHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
