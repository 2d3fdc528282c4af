package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/repository"
	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
)

// ResultRepo реализует repository.QuizResultRepository поверх KV-хранилища.
// Журнал append-only: записи никогда не изменяются и не удаляются.
type ResultRepo struct {
	store repository.KeyValueStore
}

// NewResultRepo создает новый репозиторий журнала попыток
func NewResultRepo(store repository.KeyValueStore) *ResultRepo {
	return &ResultRepo{store: store}
}

// GetAll возвращает журнал, отсортированный по полю date.
// Агрегаты ядра требуют хронологического порядка: сортируем при чтении,
// даже если записи были дописаны не по порядку.
func (r *ResultRepo) GetAll() ([]entity.QuizResult, error) {
	data, err := r.store.Get(repository.KeyQuizResults)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []entity.QuizResult{}, nil
		}
		return nil, err
	}

	var results []entity.QuizResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quiz results: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Date.Before(results[j].Date)
	})
	return results, nil
}

// GetByEnemyID возвращает попытки одного врага в хронологическом порядке
func (r *ResultRepo) GetByEnemyID(enemyID string) ([]entity.QuizResult, error) {
	results, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	filtered := make([]entity.QuizResult, 0)
	for _, res := range results {
		if res.EnemyID == enemyID {
			filtered = append(filtered, res)
		}
	}
	return filtered, nil
}

// Append дописывает результат в журнал
func (r *ResultRepo) Append(result *entity.QuizResult) error {
	results, err := r.GetAll()
	if err != nil {
		return err
	}
	results = append(results, *result)

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz results: %w", err)
	}
	return r.store.Put(repository.KeyQuizResults, data)
}
