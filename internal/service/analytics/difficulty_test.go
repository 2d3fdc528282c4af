package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

func TestDifficultyBreakdown(t *testing.T) {
	// Arrange: сложность q1 в банке (hard) перекрывает сложность из записи ответа
	questions := map[string]entity.Question{
		"q1": {ID: "q1", Difficulty: entity.DifficultyHard},
		"q2": {ID: "q2", Difficulty: entity.DifficultyMedium},
	}
	results := []entity.QuizResult{
		{
			EnemyID:        "enemy-1",
			CorrectAnswers: 2,
			TotalQuestions: 3,
			Answers: []entity.QuizAnswer{
				{QuestionID: "q1", Correct: true, Difficulty: entity.DifficultyEasy, TimeSpentMs: 20_000},
				{QuestionID: "q2", Correct: false, TimeSpentMs: 10_000},
				{QuestionID: "q-deleted", Correct: true, Difficulty: entity.DifficultyMedium, TimeSpentMs: 6_000},
			},
		},
	}

	// Act
	stats := DifficultyBreakdown(results, questions)

	// Assert: всегда три строки в фиксированном порядке
	require.Len(t, stats, 3)
	assert.Equal(t, entity.DifficultyEasy, stats[0].Difficulty)
	assert.Equal(t, entity.DifficultyMedium, stats[1].Difficulty)
	assert.Equal(t, entity.DifficultyHard, stats[2].Difficulty)

	// q1: банк говорит hard, несмотря на easy в записи
	assert.Equal(t, 1, stats[2].Attempted)
	assert.Equal(t, 1, stats[2].Correct)
	assert.InDelta(t, 100.0, stats[2].AccuracyPercent, 0.001)
	assert.InDelta(t, 20_000, stats[2].AvgTimeMs, 0.001)

	// q2 (medium из банка) + удаленный вопрос (medium из записи)
	assert.Equal(t, 2, stats[1].Attempted)
	assert.Equal(t, 1, stats[1].Correct)
	assert.InDelta(t, 50.0, stats[1].AccuracyPercent, 0.001)
	assert.InDelta(t, 8_000, stats[1].AvgTimeMs, 0.001)

	// easy не затронут
	assert.Zero(t, stats[0].Attempted)
	assert.Zero(t, stats[0].AccuracyPercent)
}

func TestDifficultyBreakdown_Empty(t *testing.T) {
	stats := DifficultyBreakdown(nil, nil)

	require.Len(t, stats, 3, "Пустой журнал дает нулевые строки, а не ошибку")
	for _, s := range stats {
		assert.Zero(t, s.Attempted)
		assert.Zero(t, s.Correct)
	}
}
