package dto

import (
	"time"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// EnemyResponse представляет врага в API-ответах.
// Добавляет производные поля, которые клиенту иначе пришлось бы вычислять.
type EnemyResponse struct {
	ID         string `json:"id"`
	SubjectID  string `json:"subjectId"`
	TopicID    string `json:"topicId"`
	SubTopicID string `json:"subTopicId,omitempty"`
	Name       string `json:"name"`

	Status   entity.EnemyStatus `json:"status"`
	Progress int                `json:"progress"`

	ReadySince   *time.Time `json:"readySince,omitempty"`
	LastReviewed *time.Time `json:"lastReviewed,omitempty"`

	UnderSpacedRepetition bool       `json:"underSpacedRepetition"`
	NextReviewDate        *time.Time `json:"nextReviewDate,omitempty"`

	AutoPromoteEnabled bool `json:"autoPromoteEnabled"`
	PromotionPoints    int  `json:"promotionPoints"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewEnemyResponse преобразует entity.Enemy в DTO
func NewEnemyResponse(e *entity.Enemy) *EnemyResponse {
	resp := &EnemyResponse{
		ID:                    e.ID,
		SubjectID:             e.SubjectID,
		TopicID:               e.TopicID,
		SubTopicID:            e.SubTopicID,
		Name:                  e.Name,
		Status:                e.Status,
		Progress:              e.Progress,
		ReadySince:            e.ReadySince,
		LastReviewed:          e.LastReviewed,
		UnderSpacedRepetition: e.UnderSpacedRepetition(),
		AutoPromoteEnabled:    e.AutoPromoteEnabled,
		PromotionPoints:       e.PromotionPoints,
		CreatedAt:             e.CreatedAt,
	}
	if next, ok := e.NextReviewDate(); ok {
		resp.NextReviewDate = &next
	}
	return resp
}

// NewListEnemyResponse преобразует список врагов в DTO
func NewListEnemyResponse(enemies []entity.Enemy) []EnemyResponse {
	out := make([]EnemyResponse, len(enemies))
	for i := range enemies {
		out[i] = *NewEnemyResponse(&enemies[i])
	}
	return out
}
