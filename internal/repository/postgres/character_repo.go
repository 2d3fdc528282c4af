package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/repository"
)

// CharacterRepo реализует repository.CharacterRepository поверх KV-хранилища
type CharacterRepo struct {
	store repository.KeyValueStore
}

// NewCharacterRepo создает новый репозиторий снимка персонажа
func NewCharacterRepo(store repository.KeyValueStore) *CharacterRepo {
	return &CharacterRepo{store: store}
}

// Get возвращает снимок персонажа или ErrNotFound, если он еще не создан
func (r *CharacterRepo) Get() (*entity.Character, error) {
	data, err := r.store.Get(repository.KeyCharacter)
	if err != nil {
		return nil, err
	}

	var character entity.Character
	if err := json.Unmarshal(data, &character); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return &character, nil
}

// Save сохраняет снимок персонажа
func (r *CharacterRepo) Save(character *entity.Character) error {
	data, err := json.Marshal(character)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}
	return r.store.Put(repository.KeyCharacter, data)
}
