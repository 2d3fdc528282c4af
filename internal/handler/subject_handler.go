package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/service"
)

// SubjectHandler обрабатывает запросы, связанные с деревом предметов
type SubjectHandler struct {
	subjectService *service.SubjectService
}

// NewSubjectHandler создает новый обработчик предметов
func NewSubjectHandler(subjectService *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

// GetSubjects возвращает дерево предметов с пересчитанным прогрессом
func (h *SubjectHandler) GetSubjects(c *gin.Context) {
	subjects, err := h.subjectService.GetSubjects()
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subjects": subjects,
		"total":    len(subjects),
	})
}

// CreateSubjectRequest представляет запрос на создание предмета
type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// CreateSubject обрабатывает запрос на создание предмета
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	var req CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, err := h.subjectService.CreateSubject(req.Name)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subject)
}

// AddTopicRequest представляет запрос на добавление темы
type AddTopicRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// AddTopic обрабатывает запрос на добавление темы к предмету
func (h *SubjectHandler) AddTopic(c *gin.Context) {
	subjectID := c.MustGet("subjectID").(string) // Получаем из контекста

	var req AddTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topic, err := h.subjectService.AddTopic(subjectID, req.Name)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, topic)
}

// AddSubTopicRequest представляет запрос на добавление подтемы
type AddSubTopicRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// AddSubTopic обрабатывает запрос на добавление подтемы к теме
func (h *SubjectHandler) AddSubTopic(c *gin.Context) {
	subjectID := c.MustGet("subjectID").(string)
	topicID := c.MustGet("topicID").(string)

	var req AddSubTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subTopic, err := h.subjectService.AddSubTopic(subjectID, topicID, req.Name)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subTopic)
}

// AddQuestionRequest представляет запрос на добавление вопроса
type AddQuestionRequest struct {
	Text    string `json:"text" binding:"required,min=1"`
	Type    string `json:"type" binding:"required,oneof=multiple_choice true_false"`
	Options []struct {
		Text    string `json:"text" binding:"required"`
		Correct bool   `json:"correct"`
		Comment string `json:"comment,omitempty"`
	} `json:"options" binding:"required,min=2"`
	Difficulty string `json:"difficulty,omitempty"` // easy/medium/hard, по умолчанию easy
	SubTopicID string `json:"subTopicId,omitempty"` // Пусто = вопрос уровня темы
	Provenance *struct {
		ExamBoard    string `json:"examBoard,omitempty"`
		Year         int    `json:"year,omitempty"`
		Organization string `json:"organization,omitempty"`
	} `json:"provenance,omitempty"`
}

// AddQuestion обрабатывает запрос на добавление вопроса в банк темы
func (h *SubjectHandler) AddQuestion(c *gin.Context) {
	subjectID := c.MustGet("subjectID").(string)
	topicID := c.MustGet("topicID").(string)

	var req AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question := entity.Question{
		Text:       req.Text,
		Type:       entity.QuestionType(req.Type),
		Difficulty: entity.ParseDifficulty(req.Difficulty),
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, entity.QuestionOption{
			Text:    opt.Text,
			Correct: opt.Correct,
			Comment: opt.Comment,
		})
	}
	if req.Provenance != nil {
		question.Provenance = &entity.QuestionProvenance{
			ExamBoard:    req.Provenance.ExamBoard,
			Year:         req.Provenance.Year,
			Organization: req.Provenance.Organization,
		}
	}

	created, err := h.subjectService.AddQuestion(subjectID, topicID, req.SubTopicID, question)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// handleSubjectError обрабатывает ошибки от сервиса предметов и отправляет соответствующий HTTP ответ
func (h *SubjectHandler) handleSubjectError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrDuplicateName) || errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in SubjectHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
