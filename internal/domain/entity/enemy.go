package entity

import (
	"time"

	"github.com/google/uuid"
)

// EnemyStatus определяет статус врага (темы для изучения)
type EnemyStatus string

const (
	// EnemyStatusReady — враг свободен и доступен для боя
	EnemyStatusReady EnemyStatus = "ready"
	// EnemyStatusBattle — враг находится в активном бою (тема изучается)
	EnemyStatusBattle EnemyStatus = "battle"
	// EnemyStatusWounded — последний бой провален, тема требует доработки
	EnemyStatusWounded EnemyStatus = "wounded"
	// EnemyStatusObserved — тема освоена; может нести график повторений
	EnemyStatusObserved EnemyStatus = "observed"
)

// Valid проверяет, что статус принадлежит закрытому множеству
func (s EnemyStatus) Valid() bool {
	switch s {
	case EnemyStatusReady, EnemyStatusBattle, EnemyStatusWounded, EnemyStatusObserved:
		return true
	}
	return false
}

// Enemy представляет врага — выбираемую цель изучения,
// привязанную к теме или подтеме предмета
type Enemy struct {
	ID         string `json:"id"`
	SubjectID  string `json:"subjectId"`
	TopicID    string `json:"topicId"`
	SubTopicID string `json:"subTopicId,omitempty"`
	Name       string `json:"name"`

	Status   EnemyStatus `json:"status"`
	Progress int         `json:"progress"` // 0-100

	ReadySince   *time.Time `json:"readySince,omitempty"`
	LastReviewed *time.Time `json:"lastReviewed,omitempty"`

	// График интервальных повторений. Враг считается находящимся под
	// интервальным повторением только когда задан и список дат, и индекс:
	// даты без индекса означают обычного освоенного врага. Другие подсистемы
	// опираются на это различие, чтобы не считать врага дважды.
	NextReviewDates    []time.Time `json:"nextReviewDates,omitempty"`
	CurrentReviewIndex *int        `json:"currentReviewIndex,omitempty"`

	AutoPromoteEnabled bool `json:"autoPromoteEnabled"`
	PromotionPoints    int  `json:"promotionPoints"` // 0-10, с насыщением

	// Дата последней проверки авто-продвижения; обеспечивает идемпотентность
	// периодического обхода (не более одного очка за календарный день).
	LastPromotionCheck *time.Time `json:"lastPromotionCheck,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewEnemy создает врага в статусе ready с нулевым прогрессом
func NewEnemy(subjectID, topicID, subTopicID, name string, autoPromote bool) *Enemy {
	now := time.Now()
	return &Enemy{
		ID:                 uuid.NewString(),
		SubjectID:          subjectID,
		TopicID:            topicID,
		SubTopicID:         subTopicID,
		Name:               name,
		Status:             EnemyStatusReady,
		Progress:           0,
		ReadySince:         &now,
		AutoPromoteEnabled: autoPromote,
		CreatedAt:          now,
	}
}

// UnderSpacedRepetition сообщает, находится ли враг под интервальным
// повторением: и список дат, и индекс должны быть заданы
func (e *Enemy) UnderSpacedRepetition() bool {
	return len(e.NextReviewDates) > 0 && e.CurrentReviewIndex != nil
}

// HasPendingReview сообщает, есть ли у врага невыполненное повторение
func (e *Enemy) HasPendingReview() bool {
	return e.UnderSpacedRepetition() && *e.CurrentReviewIndex < len(e.NextReviewDates)
}

// NextReviewDate возвращает дату ближайшего повторения
func (e *Enemy) NextReviewDate() (time.Time, bool) {
	if !e.HasPendingReview() {
		return time.Time{}, false
	}
	return e.NextReviewDates[*e.CurrentReviewIndex], true
}
