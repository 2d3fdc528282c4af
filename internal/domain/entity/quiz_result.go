package entity

import (
	"fmt"
	"time"

	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
)

// ConfidenceLevel определяет самооценку уверенности в ответе.
// Отличается от правильности: ответ может быть верным при «не знаю».
type ConfidenceLevel string

const (
	ConfidenceCertainty ConfidenceLevel = "certainty"
	ConfidenceDoubt     ConfidenceLevel = "doubt"
	ConfidenceUnknown   ConfidenceLevel = "unknown"
)

// QuizAnswer представляет один ответ внутри завершенного боя
type QuizAnswer struct {
	QuestionID  string          `json:"questionId"`
	Correct     bool            `json:"correct"`
	Confidence  ConfidenceLevel `json:"confidence,omitempty"`
	Difficulty  Difficulty      `json:"difficulty,omitempty"`
	TimeSpentMs int64           `json:"timeSpent"`
}

// QuizResult представляет результат одного завершенного боя.
// Запись неизменяема после создания и дописывается в журнал попыток.
type QuizResult struct {
	EnemyID         string       `json:"enemyId"`
	CorrectAnswers  int          `json:"correctAnswers"`
	TotalQuestions  int          `json:"totalQuestions"`
	ConfidenceScore float64      `json:"confidenceScore"` // 0-100, производное
	TimeSpentMs     int64        `json:"timeSpent"`
	Answers         []QuizAnswer `json:"answers"`
	Date            time.Time    `json:"date"`
}

// NewQuizResult создает результат боя, проверяя инварианты.
// Нарушение инвариантов отклоняет создание целиком (fail fast, без усечения).
func NewQuizResult(
	enemyID string,
	correctAnswers, totalQuestions int,
	confidenceScore float64,
	timeSpentMs int64,
	answers []QuizAnswer,
	date time.Time,
) (*QuizResult, error) {
	if totalQuestions <= 0 {
		return nil, fmt.Errorf("%w: totalQuestions must be positive, got %d",
			apperrors.ErrInvalidQuizResult, totalQuestions)
	}
	if correctAnswers < 0 || correctAnswers > totalQuestions {
		return nil, fmt.Errorf("%w: correctAnswers %d out of range [0, %d]",
			apperrors.ErrInvalidQuizResult, correctAnswers, totalQuestions)
	}
	if confidenceScore < 0 || confidenceScore > 100 {
		return nil, fmt.Errorf("%w: confidenceScore %.2f out of range [0, 100]",
			apperrors.ErrInvalidQuizResult, confidenceScore)
	}
	if timeSpentMs < 0 {
		return nil, fmt.Errorf("%w: timeSpent must be non-negative, got %d",
			apperrors.ErrInvalidQuizResult, timeSpentMs)
	}
	if len(answers) > 0 && len(answers) != totalQuestions {
		return nil, fmt.Errorf("%w: %d answers for %d questions",
			apperrors.ErrInvalidQuizResult, len(answers), totalQuestions)
	}

	return &QuizResult{
		EnemyID:         enemyID,
		CorrectAnswers:  correctAnswers,
		TotalQuestions:  totalQuestions,
		ConfidenceScore: confidenceScore,
		TimeSpentMs:     timeSpentMs,
		Answers:         answers,
		Date:            date,
	}, nil
}

// Accuracy возвращает долю правильных ответов в [0, 1]
func (r *QuizResult) Accuracy() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.CorrectAnswers) / float64(r.TotalQuestions)
}

// AccuracyPercent возвращает точность в процентах
func (r *QuizResult) AccuracyPercent() float64 {
	return r.Accuracy() * 100
}
