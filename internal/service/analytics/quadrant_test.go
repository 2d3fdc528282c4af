package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

func TestConfidenceAsNumber(t *testing.T) {
	v, ok := ConfidenceAsNumber(entity.ConfidenceCertainty)
	require.True(t, ok)
	assert.Equal(t, 100.0, v)

	v, ok = ConfidenceAsNumber(entity.ConfidenceDoubt)
	require.True(t, ok)
	assert.Equal(t, 50.0, v)

	v, ok = ConfidenceAsNumber(entity.ConfidenceUnknown)
	require.True(t, ok)
	assert.Zero(t, v)

	_, ok = ConfidenceAsNumber(entity.ConfidenceLevel(""))
	assert.False(t, ok, "Ответ без тега не участвует в квадранте")
}

func TestStrategyQuadrant(t *testing.T) {
	// Arrange: 4 ответа, медиана времени = (10+20)/2 = 15 секунд
	results := []entity.QuizResult{
		{
			EnemyID:        "enemy-1",
			CorrectAnswers: 2,
			TotalQuestions: 4,
			Answers: []entity.QuizAnswer{
				{QuestionID: "q1", Correct: true, Confidence: entity.ConfidenceCertainty, TimeSpentMs: 5_000},
				{QuestionID: "q2", Correct: false, Confidence: entity.ConfidenceCertainty, TimeSpentMs: 25_000},
				{QuestionID: "q3", Correct: true, Confidence: entity.ConfidenceUnknown, TimeSpentMs: 10_000},
				{QuestionID: "q4", Correct: false, Confidence: entity.ConfidenceDoubt, TimeSpentMs: 30_000},
			},
		},
	}

	// Act
	report := StrategyQuadrant(results)

	// Assert
	assert.InDelta(t, 17.5, report.MedianTimeSeconds, 0.001)
	assert.Equal(t, 50.0, report.ConfidenceMidpoint)

	require.Len(t, report.ConfidentFast, 1)
	assert.True(t, report.ConfidentFast[0].Correct)

	require.Len(t, report.ConfidentSlow, 1)
	assert.False(t, report.ConfidentSlow[0].Correct)

	// doubt (50) не выше середины: попадает в uncertain
	require.Len(t, report.UncertainFast, 1)
	require.Len(t, report.UncertainSlow, 1)
}

func TestStrategyQuadrant_FiltersUntaggedAndZeroTime(t *testing.T) {
	results := []entity.QuizResult{
		{
			EnemyID:        "enemy-1",
			CorrectAnswers: 2,
			TotalQuestions: 3,
			Answers: []entity.QuizAnswer{
				{QuestionID: "q1", Correct: true, TimeSpentMs: 5_000},                                      // без тега
				{QuestionID: "q2", Correct: true, Confidence: entity.ConfidenceCertainty, TimeSpentMs: 0}, // без времени
				{QuestionID: "q3", Correct: false, Confidence: entity.ConfidenceDoubt, TimeSpentMs: 8_000},
			},
		},
	}

	report := StrategyQuadrant(results)

	total := len(report.ConfidentFast) + len(report.ConfidentSlow) +
		len(report.UncertainFast) + len(report.UncertainSlow)
	assert.Equal(t, 1, total, "Участвуют только ответы с тегом и временем")
	assert.InDelta(t, 8.0, report.MedianTimeSeconds, 0.001)
}

func TestStrategyQuadrant_Empty(t *testing.T) {
	report := StrategyQuadrant(nil)

	assert.Zero(t, report.MedianTimeSeconds)
	assert.Empty(t, report.ConfidentFast)
	assert.Empty(t, report.ConfidentSlow)
	assert.Empty(t, report.UncertainFast)
	assert.Empty(t, report.UncertainSlow)
}
