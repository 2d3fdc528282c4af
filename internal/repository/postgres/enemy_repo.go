package postgres

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/repository"
	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
)

// EnemyRepo реализует repository.EnemyRepository поверх KV-хранилища
type EnemyRepo struct {
	store repository.KeyValueStore
}

// NewEnemyRepo создает новый репозиторий врагов
func NewEnemyRepo(store repository.KeyValueStore) *EnemyRepo {
	return &EnemyRepo{store: store}
}

// GetAll возвращает всех врагов; пустая коллекция — не ошибка
func (r *EnemyRepo) GetAll() ([]entity.Enemy, error) {
	data, err := r.store.Get(repository.KeyEnemies)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []entity.Enemy{}, nil
		}
		return nil, err
	}

	var enemies []entity.Enemy
	if err := json.Unmarshal(data, &enemies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal enemies: %w", err)
	}
	return enemies, nil
}

// GetByID возвращает врага по ID
func (r *EnemyRepo) GetByID(id string) (*entity.Enemy, error) {
	enemies, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range enemies {
		if enemies[i].ID == id {
			return &enemies[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// SaveAll сохраняет коллекцию врагов целиком
func (r *EnemyRepo) SaveAll(enemies []entity.Enemy) error {
	data, err := json.Marshal(enemies)
	if err != nil {
		return fmt.Errorf("failed to marshal enemies: %w", err)
	}
	return r.store.Put(repository.KeyEnemies, data)
}

// Update заменяет одного врага в коллекции (read-modify-write)
func (r *EnemyRepo) Update(enemy *entity.Enemy) error {
	enemies, err := r.GetAll()
	if err != nil {
		return err
	}
	for i := range enemies {
		if enemies[i].ID == enemy.ID {
			enemies[i] = *enemy
			return r.SaveAll(enemies)
		}
	}
	return apperrors.ErrNotFound
}
