package repository

import (
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// SubjectRepository определяет методы для работы с деревом предметов
type SubjectRepository interface {
	GetAll() ([]entity.Subject, error)
	SaveAll(subjects []entity.Subject) error
}

// EnemyRepository определяет методы для работы с врагами
type EnemyRepository interface {
	GetAll() ([]entity.Enemy, error)
	GetByID(id string) (*entity.Enemy, error)
	SaveAll(enemies []entity.Enemy) error
	// Update заменяет одного врага в коллекции (read-modify-write)
	Update(enemy *entity.Enemy) error
}

// QuizResultRepository определяет методы для журнала попыток.
// Журнал append-only: записи никогда не изменяются и не удаляются.
type QuizResultRepository interface {
	// GetAll возвращает журнал, отсортированный по полю date
	GetAll() ([]entity.QuizResult, error)
	GetByEnemyID(enemyID string) ([]entity.QuizResult, error)
	Append(result *entity.QuizResult) error
}

// CharacterRepository определяет методы для снимка персонажа
type CharacterRepository interface {
	// Get возвращает снимок или ErrNotFound, если персонаж еще не создан
	Get() (*entity.Character, error)
	Save(character *entity.Character) error
}
