package dto

import (
	"time"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// CharacterResponse представляет снимок персонажа в API-ответах
type CharacterResponse struct {
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
	RankName    string `json:"rankName"`
	NextLevelXP int    `json:"nextLevelXp"`

	Attributes entity.Attributes `json:"attributes"`

	Achievements        []string `json:"achievements"`
	CompletedChallenges []string `json:"completedChallenges"`

	StreakDays    int        `json:"streakDays"`
	LastStudyDate *time.Time `json:"lastStudyDate,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCharacterResponse преобразует entity.Character в DTO
func NewCharacterResponse(c *entity.Character) *CharacterResponse {
	return &CharacterResponse{
		XP:                  c.XP,
		Level:               c.Level,
		RankName:            c.RankName,
		NextLevelXP:         c.NextLevelXP,
		Attributes:          c.Attributes,
		Achievements:        c.Achievements,
		CompletedChallenges: c.CompletedChallenges,
		StreakDays:          c.StreakDays,
		LastStudyDate:       c.LastStudyDate,
		UpdatedAt:           c.UpdatedAt,
	}
}
