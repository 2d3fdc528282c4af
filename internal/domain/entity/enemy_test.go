package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnemy_Defaults(t *testing.T) {
	// Act
	enemy := NewEnemy("subj-1", "topic-1", "", "Термодинамика", true)

	// Assert
	assert.NotEmpty(t, enemy.ID)
	assert.Equal(t, EnemyStatusReady, enemy.Status, "Новый враг создается в ready")
	assert.Zero(t, enemy.Progress)
	require.NotNil(t, enemy.ReadySince, "ReadySince проставляется при создании")
	assert.True(t, enemy.AutoPromoteEnabled)
	assert.Zero(t, enemy.PromotionPoints)
	assert.False(t, enemy.UnderSpacedRepetition())
}

func TestEnemyStatus_Valid(t *testing.T) {
	assert.True(t, EnemyStatusReady.Valid())
	assert.True(t, EnemyStatusBattle.Valid())
	assert.True(t, EnemyStatusWounded.Valid())
	assert.True(t, EnemyStatusObserved.Valid())
	assert.False(t, EnemyStatus("defeated").Valid(), "Множество статусов закрыто")
	assert.False(t, EnemyStatus("").Valid())
}

func TestEnemy_UnderSpacedRepetition_RequiresBothFields(t *testing.T) {
	dates := []time.Time{time.Now().AddDate(0, 0, 1)}
	zero := 0

	testCases := []struct {
		name     string
		dates    []time.Time
		index    *int
		expected bool
	}{
		{"даты и индекс заданы", dates, &zero, true},
		{"даты без индекса — не под повторением", dates, nil, false},
		{"индекс без дат", nil, &zero, false},
		{"ничего не задано", nil, nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			enemy := &Enemy{
				Status:             EnemyStatusObserved,
				NextReviewDates:    tc.dates,
				CurrentReviewIndex: tc.index,
			}
			assert.Equal(t, tc.expected, enemy.UnderSpacedRepetition())
		})
	}
}

func TestEnemy_HasPendingReview(t *testing.T) {
	dates := []time.Time{
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local),
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.Local),
	}

	// Индекс внутри графика: повторение ожидается
	idx := 1
	enemy := &Enemy{NextReviewDates: dates, CurrentReviewIndex: &idx}
	assert.True(t, enemy.HasPendingReview())

	next, ok := enemy.NextReviewDate()
	require.True(t, ok)
	assert.Equal(t, dates[1], next, "Ближайшая дата берется по текущему индексу")

	// Индекс за концом графика: все повторения пройдены
	done := 2
	enemy.CurrentReviewIndex = &done
	assert.False(t, enemy.HasPendingReview(), "Исчерпанный график не дает ожидаемых повторений")

	_, ok = enemy.NextReviewDate()
	assert.False(t, ok)
}
