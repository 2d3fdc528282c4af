package postgres

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/repository"
	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
)

// SubjectRepo реализует repository.SubjectRepository поверх KV-хранилища
type SubjectRepo struct {
	store repository.KeyValueStore
}

// NewSubjectRepo создает новый репозиторий предметов
func NewSubjectRepo(store repository.KeyValueStore) *SubjectRepo {
	return &SubjectRepo{store: store}
}

// GetAll возвращает все предметы; пустая коллекция — не ошибка
func (r *SubjectRepo) GetAll() ([]entity.Subject, error) {
	data, err := r.store.Get(repository.KeySubjects)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []entity.Subject{}, nil
		}
		return nil, err
	}

	var subjects []entity.Subject
	if err := json.Unmarshal(data, &subjects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subjects: %w", err)
	}
	return subjects, nil
}

// SaveAll сохраняет коллекцию предметов целиком
func (r *SubjectRepo) SaveAll(subjects []entity.Subject) error {
	data, err := json.Marshal(subjects)
	if err != nil {
		return fmt.Errorf("failed to marshal subjects: %w", err)
	}
	return r.store.Put(repository.KeySubjects, data)
}
