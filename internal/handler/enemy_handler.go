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

// EnemyHandler обрабатывает запросы, связанные с врагами
type EnemyHandler struct {
	enemyService *service.EnemyService
}

// NewEnemyHandler создает новый обработчик врагов
func NewEnemyHandler(enemyService *service.EnemyService) *EnemyHandler {
	return &EnemyHandler{enemyService: enemyService}
}

// GetEnemies возвращает список всех врагов
func (h *EnemyHandler) GetEnemies(c *gin.Context) {
	enemies, err := h.enemyService.GetEnemies()
	if err != nil {
		h.handleEnemyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enemies": dto.NewListEnemyResponse(enemies),
		"total":   len(enemies),
	})
}

// CreateEnemyRequest представляет запрос на создание врага
type CreateEnemyRequest struct {
	SubjectID   string `json:"subjectId" binding:"required,uuid"`
	TopicID     string `json:"topicId" binding:"required,uuid"`
	SubTopicID  string `json:"subTopicId" binding:"omitempty,uuid"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	AutoPromote bool   `json:"autoPromote"`
}

// CreateEnemy обрабатывает запрос на создание врага
func (h *EnemyHandler) CreateEnemy(c *gin.Context) {
	var req CreateEnemyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enemy, err := h.enemyService.CreateEnemy(req.SubjectID, req.TopicID, req.SubTopicID, req.Name, req.AutoPromote)
	if err != nil {
		h.handleEnemyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewEnemyResponse(enemy))
}

// PromoteEnemy переводит врага из ready в battle
func (h *EnemyHandler) PromoteEnemy(c *gin.Context) {
	enemyID := c.MustGet("enemyID").(string) // Получаем из контекста

	enemy, err := h.enemyService.PromoteEnemy(enemyID)
	if err != nil {
		h.handleEnemyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEnemyResponse(enemy))
}

// RetreatEnemy возвращает врага в статус ready
func (h *EnemyHandler) RetreatEnemy(c *gin.Context) {
	enemyID := c.MustGet("enemyID").(string)

	enemy, err := h.enemyService.RetreatEnemy(enemyID)
	if err != nil {
		h.handleEnemyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEnemyResponse(enemy))
}

// RunPromotionSweep запускает обход авто-продвижения по всем готовым врагам.
// Повторный запуск в течение блокировки — конфликт, а не второй обход.
func (h *EnemyHandler) RunPromotionSweep(c *gin.Context) {
	promoted, err := h.enemyService.CheckReadyEnemies(time.Now())
	if err != nil {
		h.handleEnemyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Promotion sweep completed",
		"promoted": promoted,
	})
}

// GetReviewsDueToday возвращает врагов с повторением на сегодня или просроченным
func (h *EnemyHandler) GetReviewsDueToday(c *gin.Context) {
	enemies, err := h.enemyService.ReviewsDueToday(time.Now())
	if err != nil {
		h.handleEnemyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enemies": dto.NewListEnemyResponse(enemies),
		"total":   len(enemies),
	})
}

// GetReviewsDueFuture возвращает врагов с повторением в будущем
func (h *EnemyHandler) GetReviewsDueFuture(c *gin.Context) {
	enemies, err := h.enemyService.ReviewsDueFuture(time.Now())
	if err != nil {
		h.handleEnemyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enemies": dto.NewListEnemyResponse(enemies),
		"total":   len(enemies),
	})
}

// handleEnemyError обрабатывает ошибки от сервиса врагов и отправляет соответствующий HTTP ответ
func (h *EnemyHandler) handleEnemyError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrDuplicateName) || errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, service.ErrEnemyNotPromotable) || errors.Is(err, service.ErrEnemyNotRetreatable) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, service.ErrSweepAlreadyRunning) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in EnemyHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
