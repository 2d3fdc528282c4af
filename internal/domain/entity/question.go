package entity

import (
	"fmt"

	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
)

// QuestionType определяет тип вопроса
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
)

// Difficulty определяет уровень сложности вопроса
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty нормализует строку сложности.
// Неизвестные значения трактуются как easy — это документированный fallback,
// а не ошибка: старые записи могут вообще не нести сложность.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s)
	default:
		return DifficultyEasy
	}
}

// QuestionOption представляет вариант ответа на вопрос
type QuestionOption struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
	Comment string `json:"comment,omitempty"` // Пояснение, показываемое после ответа
}

// QuestionProvenance хранит метаданные происхождения вопроса (банк экзаменов)
type QuestionProvenance struct {
	ExamBoard    string `json:"examBoard,omitempty"`
	Year         int    `json:"year,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// Question представляет вопрос в банке тем
type Question struct {
	ID         string              `json:"id"`
	Text       string              `json:"text"`
	Type       QuestionType        `json:"type"`
	Options    []QuestionOption    `json:"options"`
	Difficulty Difficulty          `json:"difficulty"`
	Provenance *QuestionProvenance `json:"provenance,omitempty"`
}

// Validate проверяет инварианты вопроса:
// хотя бы один вариант помечен правильным; для true_false ровно два варианта,
// и правильным помечен ровно один из них.
func (q *Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("%w: question text is empty", apperrors.ErrValidation)
	}
	if q.Type != QuestionTypeMultipleChoice && q.Type != QuestionTypeTrueFalse {
		return fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidation, q.Type)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: question has no options", apperrors.ErrValidation)
	}

	correct := 0
	for _, opt := range q.Options {
		if opt.Correct {
			correct++
		}
	}
	if correct == 0 {
		return fmt.Errorf("%w: question has no correct option", apperrors.ErrValidation)
	}

	if q.Type == QuestionTypeTrueFalse {
		if len(q.Options) != 2 {
			return fmt.Errorf("%w: true/false question must have exactly 2 options, got %d",
				apperrors.ErrValidation, len(q.Options))
		}
		// Взаимоисключающая правильность: ровно один из двух
		if correct != 1 {
			return fmt.Errorf("%w: true/false question must have exactly 1 correct option, got %d",
				apperrors.ErrValidation, correct)
		}
	}

	return nil
}

// CorrectOptionIDs возвращает идентификаторы правильных вариантов
func (q *Question) CorrectOptionIDs() []string {
	var ids []string
	for _, opt := range q.Options {
		if opt.Correct {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// IsCorrectOption проверяет, является ли вариант правильным
func (q *Question) IsCorrectOption(optionID string) bool {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt.Correct
		}
	}
	return false
}
