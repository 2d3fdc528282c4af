package battlemanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

func newLifecycleForTest() *Lifecycle {
	config := DefaultConfig()
	return NewLifecycle(config, NewReviewScheduler(config))
}

func readyEnemy(since time.Time) entity.Enemy {
	s := since
	return entity.Enemy{
		ID:         "enemy-1",
		Name:       "Термодинамика",
		Status:     entity.EnemyStatusReady,
		ReadySince: &s,
	}
}

func TestLifecycle_Promote(t *testing.T) {
	// Arrange
	lifecycle := newLifecycleForTest()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)
	enemy := readyEnemy(now.AddDate(0, 0, -1))
	enemy.PromotionPoints = 7

	// Act
	promoted, ok := lifecycle.Promote(enemy, now)

	// Assert
	require.True(t, ok)
	assert.Equal(t, entity.EnemyStatusBattle, promoted.Status)
	assert.Nil(t, promoted.ReadySince, "Отсчет простоя сбрасывается при входе в бой")
	assert.Zero(t, promoted.PromotionPoints, "Очки продвижения сбрасываются")
}

func TestLifecycle_Promote_NonReadyIsNoop(t *testing.T) {
	lifecycle := newLifecycleForTest()

	for _, status := range []entity.EnemyStatus{
		entity.EnemyStatusBattle, entity.EnemyStatusWounded, entity.EnemyStatusObserved,
	} {
		enemy := entity.Enemy{ID: "enemy-1", Status: status}
		updated, ok := lifecycle.Promote(enemy, time.Now())

		assert.False(t, ok, "Продвижение из %s должно отклоняться", status)
		assert.Equal(t, enemy, updated, "Враг не должен меняться")
	}
}

func TestLifecycle_ApplyQuizResult_BattleMastery(t *testing.T) {
	// Arrange
	lifecycle := newLifecycleForTest()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)
	enemy := entity.Enemy{ID: "enemy-1", Status: entity.EnemyStatusBattle}

	// Act: 9/10 — на пороге освоения и выше
	updated := lifecycle.ApplyQuizResult(enemy, resultWithAccuracy(9, 10), now)

	// Assert: освоение атомарно планирует график повторений
	assert.Equal(t, entity.EnemyStatusObserved, updated.Status)
	assert.Equal(t, 90, updated.Progress)
	require.True(t, updated.UnderSpacedRepetition(), "График и указатель задаются вместе")
	require.NotNil(t, updated.CurrentReviewIndex)
	assert.Zero(t, *updated.CurrentReviewIndex)
	assert.Len(t, updated.NextReviewDates, 5)
	assert.Equal(t, now.AddDate(0, 0, 1), updated.NextReviewDates[0])
}

func TestLifecycle_ApplyQuizResult_BattleFailWounds(t *testing.T) {
	lifecycle := newLifecycleForTest()
	enemy := entity.Enemy{ID: "enemy-1", Status: entity.EnemyStatusBattle}

	updated := lifecycle.ApplyQuizResult(enemy, resultWithAccuracy(5, 10), time.Now())

	assert.Equal(t, entity.EnemyStatusWounded, updated.Status)
	assert.Equal(t, 50, updated.Progress)
	assert.False(t, updated.UnderSpacedRepetition(), "Провал не планирует повторений")
}

func TestLifecycle_ApplyQuizResult_WoundedCanRecover(t *testing.T) {
	lifecycle := newLifecycleForTest()
	enemy := entity.Enemy{ID: "enemy-1", Status: entity.EnemyStatusWounded, Progress: 50}

	updated := lifecycle.ApplyQuizResult(enemy, resultWithAccuracy(8, 10), time.Now())

	assert.Equal(t, entity.EnemyStatusObserved, updated.Status, "Раненый враг осваивается повторной попыткой")
	assert.Equal(t, 80, updated.Progress)
}

func TestLifecycle_ApplyQuizResult_ProgressMasteryShortcut(t *testing.T) {
	// Накопленный прогресс выше порога осваивает врага даже при слабой попытке
	lifecycle := newLifecycleForTest()
	enemy := entity.Enemy{ID: "enemy-1", Status: entity.EnemyStatusBattle, Progress: 85}

	updated := lifecycle.ApplyQuizResult(enemy, resultWithAccuracy(5, 10), time.Now())

	assert.Equal(t, entity.EnemyStatusObserved, updated.Status)
	assert.Equal(t, 85, updated.Progress, "Прогресс не убывает от слабой попытки")
}

func TestLifecycle_ApplyQuizResult_SecondMasteryKeepsSchedule(t *testing.T) {
	// Arrange: враг уже под интервальным повторением был ранен и снова освоен
	lifecycle := newLifecycleForTest()
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.Local)
	idx := 2
	dates := NewReviewScheduler(DefaultConfig()).ScheduleFirstReview(now.AddDate(0, 0, -10))
	enemy := entity.Enemy{
		ID:                 "enemy-1",
		Status:             entity.EnemyStatusWounded,
		Progress:           60,
		NextReviewDates:    dates,
		CurrentReviewIndex: &idx,
	}

	// Act
	updated := lifecycle.ApplyQuizResult(enemy, resultWithAccuracy(9, 10), now)

	// Assert: существующий график не перезаписывается
	assert.Equal(t, entity.EnemyStatusObserved, updated.Status)
	assert.Equal(t, dates, updated.NextReviewDates)
	require.NotNil(t, updated.CurrentReviewIndex)
	assert.Equal(t, 2, *updated.CurrentReviewIndex)
}

func TestLifecycle_ApplyQuizResult_ObservedWithPendingReview(t *testing.T) {
	// Результат для observed врага с ожидаемым повторением уходит планировщику
	lifecycle := newLifecycleForTest()
	now := time.Date(2026, 3, 11, 10, 0, 0, 0, time.Local)
	enemy := observedEnemy(NewReviewScheduler(DefaultConfig()).ScheduleFirstReview(now.AddDate(0, 0, -1)), 0)

	updated := lifecycle.ApplyQuizResult(enemy, resultWithAccuracy(10, 10), now)

	require.NotNil(t, updated.CurrentReviewIndex)
	assert.Equal(t, 1, *updated.CurrentReviewIndex, "Указатель повторений продвинулся")
	assert.Equal(t, entity.EnemyStatusReady, updated.Status)
}

func TestLifecycle_ApplyQuizResult_ReadyOnlyTouches(t *testing.T) {
	lifecycle := newLifecycleForTest()
	now := time.Now()
	enemy := readyEnemy(now.AddDate(0, 0, -1))

	updated := lifecycle.ApplyQuizResult(enemy, resultWithAccuracy(9, 10), now)

	assert.Equal(t, entity.EnemyStatusReady, updated.Status, "Тренировка ready врага не меняет статус")
	assert.Equal(t, 90, updated.Progress)
	require.NotNil(t, updated.LastReviewed)
}

func TestLifecycle_Retreat(t *testing.T) {
	lifecycle := newLifecycleForTest()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)

	// Из боя и из ранения отступление разрешено
	for _, status := range []entity.EnemyStatus{entity.EnemyStatusBattle, entity.EnemyStatusWounded} {
		enemy := entity.Enemy{ID: "enemy-1", Status: status, PromotionPoints: 4}
		updated, ok := lifecycle.Retreat(enemy, now)

		require.True(t, ok, "Отступление из %s должно быть разрешено", status)
		assert.Equal(t, entity.EnemyStatusReady, updated.Status)
		require.NotNil(t, updated.ReadySince)
		assert.Zero(t, updated.PromotionPoints)
	}
}

func TestLifecycle_Retreat_ObservedWithPendingReviewRejected(t *testing.T) {
	lifecycle := newLifecycleForTest()
	enemy := observedEnemy([]time.Time{time.Now().AddDate(0, 0, 1)}, 0)

	updated, ok := lifecycle.Retreat(enemy, time.Now())

	assert.False(t, ok, "Враг в графике повторений не снимается с поля")
	assert.Equal(t, enemy, updated)
}

func TestLifecycle_Retreat_ObservedWithoutScheduleAllowed(t *testing.T) {
	lifecycle := newLifecycleForTest()
	idx := 5
	enemy := entity.Enemy{
		ID:                 "enemy-1",
		Status:             entity.EnemyStatusObserved,
		NextReviewDates:    NewReviewScheduler(DefaultConfig()).ScheduleFirstReview(time.Now().AddDate(0, 0, -40)),
		CurrentReviewIndex: &idx, // график исчерпан
	}

	updated, ok := lifecycle.Retreat(enemy, time.Now())

	require.True(t, ok, "Закрепленный враг без ожидаемых повторений может вернуться в ready")
	assert.Equal(t, entity.EnemyStatusReady, updated.Status)
}

func TestLifecycle_Retreat_ReadyRejected(t *testing.T) {
	lifecycle := newLifecycleForTest()
	enemy := readyEnemy(time.Now())

	_, ok := lifecycle.Retreat(enemy, time.Now())

	assert.False(t, ok, "Отступление ready врага — no-op")
}
