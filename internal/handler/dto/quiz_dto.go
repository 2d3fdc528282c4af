package dto

import (
	"time"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// QuizResultResponse представляет результат боя в API-ответах
type QuizResultResponse struct {
	EnemyID         string    `json:"enemyId"`
	CorrectAnswers  int       `json:"correctAnswers"`
	TotalQuestions  int       `json:"totalQuestions"`
	AccuracyPercent float64   `json:"accuracyPercent"`
	ConfidenceScore float64   `json:"confidenceScore"`
	TimeSpentMs     int64     `json:"timeSpent"`
	Date            time.Time `json:"date"`
}

// NewQuizResultResponse преобразует entity.QuizResult в DTO
func NewQuizResultResponse(r *entity.QuizResult) *QuizResultResponse {
	return &QuizResultResponse{
		EnemyID:         r.EnemyID,
		CorrectAnswers:  r.CorrectAnswers,
		TotalQuestions:  r.TotalQuestions,
		AccuracyPercent: r.AccuracyPercent(),
		ConfidenceScore: r.ConfidenceScore,
		TimeSpentMs:     r.TimeSpentMs,
		Date:            r.Date,
	}
}

// CompleteQuizResponse объединяет записанный результат и новое состояние врага
type CompleteQuizResponse struct {
	Result *QuizResultResponse `json:"result"`
	Enemy  *EnemyResponse      `json:"enemy"`
}
