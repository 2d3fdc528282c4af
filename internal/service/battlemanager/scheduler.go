package battlemanager

import (
	"log"
	"time"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// ReviewScheduler вычисляет интервалы повторений и ведет указатель
// по графику. Все методы чистые: принимают и возвращают значения.
type ReviewScheduler struct {
	config *Config
}

// NewReviewScheduler создает новый планировщик повторений
func NewReviewScheduler(config *Config) *ReviewScheduler {
	return &ReviewScheduler{config: config}
}

// ScheduleFirstReview строит график повторений от даты освоения по
// расширяющимся интервалам. Даты строго возрастают и все позже masteryDate.
func (s *ReviewScheduler) ScheduleFirstReview(masteryDate time.Time) []time.Time {
	dates := make([]time.Time, 0, len(s.config.ReviewIntervalDays))
	for _, days := range s.config.ReviewIntervalDays {
		dates = append(dates, masteryDate.AddDate(0, 0, days))
	}
	return dates
}

// AdvanceReview применяет результат завершенного повторения к врагу.
//
// Повторение на пороге освоения и выше продвигает указатель: пока в графике
// остаются даты, враг возвращается в ready (следующее повторение ожидается);
// исчерпание графика оставляет его observed без дальнейших повторений.
// Провал повторения перезапускает интервальное повторение: указатель
// возвращается на 0, и от сегодняшней даты строится свежий график.
func (s *ReviewScheduler) AdvanceReview(enemy entity.Enemy, result *entity.QuizResult, now time.Time) entity.Enemy {
	if !enemy.HasPendingReview() {
		return enemy
	}

	reviewed := now
	enemy.LastReviewed = &reviewed

	if result.AccuracyPercent() >= s.config.MasteryThresholdPercent {
		next := *enemy.CurrentReviewIndex + 1
		if next < len(enemy.NextReviewDates) {
			enemy.CurrentReviewIndex = &next
			enemy.Status = entity.EnemyStatusReady
			enemy.ReadySince = &reviewed
			enemy.PromotionPoints = 0
			log.Printf("[ReviewScheduler] Враг %s прошел повторение %d/%d, возвращен в ready",
				enemy.ID, next, len(enemy.NextReviewDates))
		} else {
			// График исчерпан: освоение закреплено
			enemy.CurrentReviewIndex = &next
			enemy.Status = entity.EnemyStatusObserved
			log.Printf("[ReviewScheduler] Враг %s завершил все повторения, освоение закреплено", enemy.ID)
		}
		return enemy
	}

	// Провал: интервальное повторение начинается заново от сегодняшнего дня
	zero := 0
	enemy.CurrentReviewIndex = &zero
	enemy.NextReviewDates = s.ScheduleFirstReview(now)
	enemy.Status = entity.EnemyStatusReady
	enemy.ReadySince = &reviewed
	enemy.PromotionPoints = 0
	log.Printf("[ReviewScheduler] Враг %s провалил повторение (%.0f%% < %.0f%%), график перезапущен",
		enemy.ID, result.AccuracyPercent(), s.config.MasteryThresholdPercent)
	return enemy
}

// EnemiesDueToday возвращает врагов, чье ближайшее повторение наступило
// (дата не позже today). Враги без указателя графика не участвуют.
func (s *ReviewScheduler) EnemiesDueToday(enemies []entity.Enemy, today time.Time) []entity.Enemy {
	endOfDay := endOfDay(today)
	due := make([]entity.Enemy, 0)
	for _, e := range enemies {
		next, ok := e.NextReviewDate()
		if !ok {
			continue
		}
		if !next.After(endOfDay) {
			due = append(due, e)
		}
	}
	return due
}

// EnemiesDueFuture возвращает врагов с ожидаемым повторением позже today —
// дополнение EnemiesDueToday среди врагов с непустым графиком
func (s *ReviewScheduler) EnemiesDueFuture(enemies []entity.Enemy, today time.Time) []entity.Enemy {
	endOfDay := endOfDay(today)
	future := make([]entity.Enemy, 0)
	for _, e := range enemies {
		next, ok := e.NextReviewDate()
		if !ok {
			continue
		}
		if next.After(endOfDay) {
			future = append(future, e)
		}
	}
	return future
}

// endOfDay возвращает последний момент календарного дня (локальные сутки)
func endOfDay(t time.Time) time.Time {
	year, month, day := t.Local().Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), time.Local)
}
