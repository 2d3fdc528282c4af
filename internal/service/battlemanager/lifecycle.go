package battlemanager

import (
	"log"
	"time"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// Lifecycle реализует машину состояний врага:
// ready -> battle -> wounded/observed -> (повторения) -> ready.
// Все методы чистые: принимают и возвращают значения.
type Lifecycle struct {
	config    *Config
	scheduler *ReviewScheduler
}

// NewLifecycle создает машину состояний врага
func NewLifecycle(config *Config, scheduler *ReviewScheduler) *Lifecycle {
	return &Lifecycle{
		config:    config,
		scheduler: scheduler,
	}
}

// Promote переводит врага из ready в battle (ручное или автоматическое
// продвижение). Продвижение не-ready врага — no-op, о котором сообщается
// вызывающему вторым значением.
func (l *Lifecycle) Promote(enemy entity.Enemy, now time.Time) (entity.Enemy, bool) {
	if enemy.Status != entity.EnemyStatusReady {
		log.Printf("[Lifecycle] Продвижение врага %s отклонено: статус %s, ожидался ready",
			enemy.ID, enemy.Status)
		return enemy, false
	}

	enemy.Status = entity.EnemyStatusBattle
	enemy.ReadySince = nil
	enemy.PromotionPoints = 0
	log.Printf("[Lifecycle] Враг %s продвинут в бой", enemy.ID)
	return enemy, true
}

// ApplyQuizResult применяет результат завершенного боя к врагу.
// Переход выбирается исчерпывающе по текущему статусу:
//   - battle/wounded: точность на пороге освоения и выше (или накопленный
//     прогресс выше порога) осваивает врага, иначе ранит;
//   - observed с ожидаемым повторением: результат трактуется как повторение
//     и передается планировщику;
//   - ready и observed без графика: обновляются только прогресс и дата
//     последней попытки.
func (l *Lifecycle) ApplyQuizResult(enemy entity.Enemy, result *entity.QuizResult, now time.Time) entity.Enemy {
	switch enemy.Status {
	case entity.EnemyStatusBattle, entity.EnemyStatusWounded:
		return l.applyBattleResult(enemy, result, now)

	case entity.EnemyStatusObserved:
		if enemy.HasPendingReview() {
			return l.scheduler.AdvanceReview(enemy, result, now)
		}
		return l.touch(enemy, result, now)

	case entity.EnemyStatusReady:
		return l.touch(enemy, result, now)

	default:
		// Закрытое множество статусов: сюда попадают только поврежденные данные
		log.Printf("[Lifecycle] Враг %s имеет неизвестный статус %q, результат применен без перехода",
			enemy.ID, enemy.Status)
		return l.touch(enemy, result, now)
	}
}

// applyBattleResult решает исход боя: освоение или ранение
func (l *Lifecycle) applyBattleResult(enemy entity.Enemy, result *entity.QuizResult, now time.Time) entity.Enemy {
	enemy = l.touch(enemy, result, now)

	mastered := result.AccuracyPercent() >= l.config.MasteryThresholdPercent ||
		enemy.Progress >= l.config.ProgressMasteryThreshold

	if !mastered {
		enemy.Status = entity.EnemyStatusWounded
		log.Printf("[Lifecycle] Враг %s ранен: точность %.0f%% ниже порога %.0f%%",
			enemy.ID, result.AccuracyPercent(), l.config.MasteryThresholdPercent)
		return enemy
	}

	firstObservation := !enemy.UnderSpacedRepetition()
	enemy.Status = entity.EnemyStatusObserved

	// Первое освоение атомарно планирует график повторений:
	// вызывающий никогда не видит observed врага с половиной графика
	if firstObservation {
		zero := 0
		enemy.NextReviewDates = l.scheduler.ScheduleFirstReview(now)
		enemy.CurrentReviewIndex = &zero
		log.Printf("[Lifecycle] Враг %s освоен, запланировано %d повторений",
			enemy.ID, len(enemy.NextReviewDates))
	} else {
		log.Printf("[Lifecycle] Враг %s снова освоен", enemy.ID)
	}
	return enemy
}

// Retreat возвращает врага с поля боя в ready («убрать с поля»).
// Применим к battle, wounded и observed без ожидаемого повторения;
// для остальных статусов — no-op, о котором сообщается вызывающему.
func (l *Lifecycle) Retreat(enemy entity.Enemy, now time.Time) (entity.Enemy, bool) {
	switch enemy.Status {
	case entity.EnemyStatusBattle, entity.EnemyStatusWounded:
		// Допустимо
	case entity.EnemyStatusObserved:
		if enemy.HasPendingReview() {
			// Враг числится в графике повторений: снятие с поля смешало бы
			// списки «поле боя» и «стратегия»
			log.Printf("[Lifecycle] Отступление врага %s отклонено: ожидается повторение", enemy.ID)
			return enemy, false
		}
	default:
		log.Printf("[Lifecycle] Отступление врага %s отклонено: статус %s", enemy.ID, enemy.Status)
		return enemy, false
	}

	ready := now
	enemy.Status = entity.EnemyStatusReady
	enemy.ReadySince = &ready
	enemy.PromotionPoints = 0
	log.Printf("[Lifecycle] Враг %s возвращен в ready", enemy.ID)
	return enemy, true
}

// touch обновляет прогресс и дату последней попытки без смены статуса.
// Прогресс не убывает: берется максимум накопленного и точности попытки.
func (l *Lifecycle) touch(enemy entity.Enemy, result *entity.QuizResult, now time.Time) entity.Enemy {
	accuracy := int(result.AccuracyPercent())
	if accuracy > enemy.Progress {
		enemy.Progress = accuracy
	}
	reviewed := now
	enemy.LastReviewed = &reviewed
	return enemy
}
