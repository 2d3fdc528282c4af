package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

func resultFor(enemyID string, correct, total int) entity.QuizResult {
	return entity.QuizResult{
		EnemyID:        enemyID,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Date:           time.Now(),
	}
}

func TestErrorPareto(t *testing.T) {
	// Arrange: тема A — 6 ошибок, тема B — 3, тема C — без ошибок
	results := []entity.QuizResult{
		resultFor("a", 4, 10),
		resultFor("b", 7, 10),
		resultFor("c", 10, 10),
	}
	enemies := []entity.Enemy{
		{ID: "a", Name: "Механика"},
		{ID: "b", Name: "Оптика"},
		{ID: "c", Name: "Акустика"},
	}

	// Act
	rows := ErrorPareto(results, enemies)

	// Assert: сортировка по убыванию ошибок, темы без ошибок исключены
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].EnemyID)
	assert.Equal(t, "Механика", rows[0].TopicName)
	assert.Equal(t, 6, rows[0].Errors)
	assert.InDelta(t, 60.0, rows[0].ErrorRatePercent, 0.001)

	assert.Equal(t, "b", rows[1].EnemyID)
	assert.Equal(t, 3, rows[1].Errors)

	// Накопленный процент
	assert.InDelta(t, 100*6.0/9.0, rows[0].CumulativePercent, 0.001)
	assert.InDelta(t, 100.0, rows[1].CumulativePercent, 0.001, "Последняя строка всегда доходит до 100%")
}

func TestErrorPareto_AggregatesAttempts(t *testing.T) {
	// Несколько попыток одной темы складываются
	results := []entity.QuizResult{
		resultFor("a", 5, 10),
		resultFor("a", 8, 10),
	}

	rows := ErrorPareto(results, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].Errors)
	assert.Equal(t, 20, rows[0].Attempted)
	assert.InDelta(t, 35.0, rows[0].ErrorRatePercent, 0.001)
	assert.Empty(t, rows[0].TopicName, "Без справочника врагов имя темы пустое")
}

func TestErrorPareto_TieBreakDeterministic(t *testing.T) {
	results := []entity.QuizResult{
		resultFor("b", 5, 10),
		resultFor("a", 5, 10),
	}

	rows := ErrorPareto(results, nil)

	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].EnemyID, "При равных ошибках порядок детерминирован по ID")
	assert.Equal(t, "b", rows[1].EnemyID)
}

func TestErrorPareto_Empty(t *testing.T) {
	assert.Empty(t, ErrorPareto(nil, nil))
	assert.Empty(t, ErrorPareto([]entity.QuizResult{resultFor("a", 10, 10)}, nil),
		"Журнал без единой ошибки дает пустой отчет")
}
