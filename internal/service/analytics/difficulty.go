package analytics

import (
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// DifficultyStats агрегирует попытки по одному уровню сложности
type DifficultyStats struct {
	Difficulty      entity.Difficulty `json:"difficulty"`
	Attempted       int               `json:"attempted"`
	Correct         int               `json:"correct"`
	AccuracyPercent float64           `json:"accuracyPercent"`
	AvgTimeMs       float64           `json:"avgTimeMs"`
}

// DifficultyBreakdown агрегирует ответы по уровням сложности.
// Сложность берется из вопроса по questionId; если вопрос не найден,
// используется сложность из записи ответа (fallback easy).
// Пустой журнал дает нулевые строки, а не ошибку.
func DifficultyBreakdown(results []entity.QuizResult, questions map[string]entity.Question) []DifficultyStats {
	order := []entity.Difficulty{entity.DifficultyEasy, entity.DifficultyMedium, entity.DifficultyHard}

	type totals struct {
		attempted int
		correct   int
		timeMs    int64
	}
	byDifficulty := make(map[entity.Difficulty]*totals, len(order))
	for _, d := range order {
		byDifficulty[d] = &totals{}
	}

	for _, r := range results {
		for _, a := range r.Answers {
			difficulty := entity.ParseDifficulty(string(a.Difficulty))
			if q, ok := questions[a.QuestionID]; ok {
				difficulty = entity.ParseDifficulty(string(q.Difficulty))
			}

			t := byDifficulty[difficulty]
			t.attempted++
			if a.Correct {
				t.correct++
			}
			t.timeMs += a.TimeSpentMs
		}
	}

	stats := make([]DifficultyStats, 0, len(order))
	for _, d := range order {
		t := byDifficulty[d]
		s := DifficultyStats{Difficulty: d, Attempted: t.attempted, Correct: t.correct}
		if t.attempted > 0 {
			s.AccuracyPercent = 100 * float64(t.correct) / float64(t.attempted)
			s.AvgTimeMs = float64(t.timeMs) / float64(t.attempted)
		}
		stats = append(stats, s)
	}
	return stats
}
