package entity

import (
	"time"
)

// Attributes представляет пять атрибутов персонажа, каждый в [0, 100]
type Attributes struct {
	Strength   int `json:"strength"`
	Agility    int `json:"agility"`
	Resistance int `json:"resistance"`
	Wisdom     int `json:"wisdom"`
	Honor      int `json:"honor"`
}

// ClampAttribute ограничивает значение атрибута диапазоном [0, 100]
func ClampAttribute(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Character представляет снимок прогрессии игрока.
// Хранится как кеш для удобства, но всегда может быть восстановлен
// из полного журнала QuizResult — авторитетен журнал, а не снимок.
type Character struct {
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
	RankName    string `json:"rankName"`
	NextLevelXP int    `json:"nextLevelXp"` // 0 для верхнего ранга

	Attributes Attributes `json:"attributes"`

	// Достижения и испытания разблокируются навсегда (write-once)
	Achievements        []string `json:"achievements"`
	CompletedChallenges []string `json:"completedChallenges"`

	StreakDays    int        `json:"streakDays"`
	LastStudyDate *time.Time `json:"lastStudyDate,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCharacter создает персонажа с начальными значениями
func NewCharacter() *Character {
	return &Character{
		XP:                  0,
		Level:               1,
		Achievements:        []string{},
		CompletedChallenges: []string{},
		UpdatedAt:           time.Now(),
	}
}

// HasAchievement проверяет, разблокировано ли достижение
func (c *Character) HasAchievement(id string) bool {
	for _, a := range c.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// UnlockAchievement добавляет достижение, если оно еще не разблокировано.
// Возвращает true при первой разблокировке.
func (c *Character) UnlockAchievement(id string) bool {
	if c.HasAchievement(id) {
		return false
	}
	c.Achievements = append(c.Achievements, id)
	return true
}

// HasCompletedChallenge проверяет, завершено ли испытание
func (c *Character) HasCompletedChallenge(id string) bool {
	for _, ch := range c.CompletedChallenges {
		if ch == id {
			return true
		}
	}
	return false
}

// CompleteChallenge отмечает испытание завершенным, если оно еще не завершено.
// Возвращает true при первом завершении.
func (c *Character) CompleteChallenge(id string) bool {
	if c.HasCompletedChallenge(id) {
		return false
	}
	c.CompletedChallenges = append(c.CompletedChallenges, id)
	return true
}
