package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/handler/dto"
	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/service"
)

// QuizHandler обрабатывает запросы боевых сессий.
// Сессия живет на клиенте: сервер отдает пул вопросов на старте
// и принимает единый итог на завершении.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик боев
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// StartQuiz возвращает пул вопросов врага для новой сессии
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	enemyID := c.MustGet("enemyID").(string) // Получаем из контекста

	questions, err := h.quizService.StartQuiz(enemyID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enemyId":   enemyID,
		"questions": questions,
		"total":     len(questions),
	})
}

// CompleteQuizRequest представляет итог завершенной сессии
type CompleteQuizRequest struct {
	Answers []struct {
		QuestionID  string `json:"questionId" binding:"required"`
		Correct     bool   `json:"correct"`
		Confidence  string `json:"confidence" binding:"omitempty,oneof=certainty doubt unknown"`
		TimeSpentMs int64  `json:"timeSpent" binding:"min=0"`
	} `json:"answers" binding:"required,min=1"`
	TimeSpentMs int64      `json:"timeSpent" binding:"min=0"`
	Date        *time.Time `json:"date,omitempty"` // Опционально, по умолчанию сейчас
}

// CompleteQuiz применяет итог сессии: журнал, жизненный цикл врага, персонаж
func (h *QuizHandler) CompleteQuiz(c *gin.Context) {
	enemyID := c.MustGet("enemyID").(string)

	var req CompleteQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make([]entity.QuizAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, entity.QuizAnswer{
			QuestionID:  a.QuestionID,
			Correct:     a.Correct,
			Confidence:  entity.ConfidenceLevel(a.Confidence),
			TimeSpentMs: a.TimeSpentMs,
		})
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	result, enemy, err := h.quizService.CompleteQuiz(enemyID, answers, req.TimeSpentMs, date)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CompleteQuizResponse{
		Result: dto.NewQuizResultResponse(result),
		Enemy:  dto.NewEnemyResponse(enemy),
	})
}

// handleQuizError обрабатывает ошибки от сервиса боев и отправляет соответствующий HTTP ответ
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrEmptyQuestionPool) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrInvalidQuizResult) || errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
