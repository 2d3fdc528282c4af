package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
)

// collectionRecord представляет одну логическую коллекцию в таблице collections
type collectionRecord struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Data      []byte    `gorm:"column:data;type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName определяет имя таблицы для GORM
func (collectionRecord) TableName() string {
	return "collections"
}

// KVStore реализует repository.KeyValueStore поверх PostgreSQL.
// Каждая логическая коллекция хранится целиком одним jsonb-документом.
type KVStore struct {
	db *gorm.DB
}

// NewKVStore создает новое хранилище коллекций
func NewKVStore(db *gorm.DB) *KVStore {
	return &KVStore{db: db}
}

// Get возвращает документ коллекции по ключу
func (s *KVStore) Get(key string) ([]byte, error) {
	var rec collectionRecord
	err := s.db.First(&rec, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read collection %q: %w", key, err)
	}
	return rec.Data, nil
}

// Put сохраняет документ коллекции, перезаписывая существующий
func (s *KVStore) Put(key string, value []byte) error {
	rec := collectionRecord{
		Key:       key,
		Data:      value,
		UpdatedAt: time.Now(),
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		// Гонка двух конкурентных вставок всё же может поднять 23505
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: concurrent write to collection %q", apperrors.ErrConflict, key)
		}
		return fmt.Errorf("failed to write collection %q: %w", key, err)
	}
	return nil
}
