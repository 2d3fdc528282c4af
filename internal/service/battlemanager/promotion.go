package battlemanager

import (
	"log"
	"time"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// CheckReadyEnemy выполняет одну проверку авто-продвижения для врага.
//
// Враг в ready, простоявший дольше ReadyPromotionDays, получает одно очко
// продвижения за цикл проверки, с насыщением на MaxPromotionPoints.
// Проверка идемпотентна в пределах календарного дня: повторный запуск без
// прошедшего времени не начисляет второго очка (guard по LastPromotionCheck).
// При включенном авто-продвижении насыщение счетчика переводит врага в бой.
func (l *Lifecycle) CheckReadyEnemy(enemy entity.Enemy, now time.Time) (entity.Enemy, bool) {
	if enemy.Status != entity.EnemyStatusReady || enemy.ReadySince == nil {
		return enemy, false
	}

	// Очки накапливаются только после порога простоя
	if now.Sub(*enemy.ReadySince) < time.Duration(l.config.ReadyPromotionDays)*24*time.Hour {
		return enemy, false
	}

	// Не более одного очка за календарный день
	if enemy.LastPromotionCheck != nil && sameDay(*enemy.LastPromotionCheck, now) {
		return enemy, false
	}

	checked := now
	enemy.LastPromotionCheck = &checked

	if enemy.PromotionPoints < l.config.MaxPromotionPoints {
		enemy.PromotionPoints++
	}

	if enemy.AutoPromoteEnabled && enemy.PromotionPoints >= l.config.MaxPromotionPoints {
		promoted, ok := l.Promote(enemy, now)
		if ok {
			log.Printf("[Lifecycle] Враг %s авто-продвинут в бой (очки достигли %d)",
				enemy.ID, l.config.MaxPromotionPoints)
			promoted.LastPromotionCheck = &checked
			return promoted, true
		}
	}

	return enemy, true
}

// sameDay проверяет, попадают ли две метки в один локальный календарный день
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
