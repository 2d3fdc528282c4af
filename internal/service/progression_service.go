package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/repository"
	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/service/progression"
)

const characterCacheKey = "progression:character"

// ProgressionService управляет снимком персонажа: XP, уровень, атрибуты,
// серия дней. Снимок кешируется в Redis; источником истины остается
// журнал результатов.
type ProgressionService struct {
	characterRepo repository.CharacterRepository
	resultRepo    repository.QuizResultRepository
	cacheRepo     repository.CacheRepository
	engine        *progression.Engine
	cacheTTL      time.Duration
}

// NewProgressionService создает новый сервис прогрессии
func NewProgressionService(
	characterRepo repository.CharacterRepository,
	resultRepo repository.QuizResultRepository,
	cacheRepo repository.CacheRepository,
	engine *progression.Engine,
	cacheTTLSec int,
) *ProgressionService {
	return &ProgressionService{
		characterRepo: characterRepo,
		resultRepo:    resultRepo,
		cacheRepo:     cacheRepo,
		engine:        engine,
		cacheTTL:      time.Duration(cacheTTLSec) * time.Second,
	}
}

// GetCharacter возвращает текущий снимок персонажа.
// Порядок: кеш → хранилище → новый персонаж первого уровня.
func (s *ProgressionService) GetCharacter(ctx context.Context) (*entity.Character, error) {
	var cached entity.Character
	if err := s.cacheRepo.GetJSON(characterCacheKey, &cached); err == nil {
		return &cached, nil
	}

	character, err := s.characterRepo.Get()
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		character = entity.NewCharacter()
		s.engine.RefreshLevel(character)
	}

	if err := s.cacheRepo.SetJSON(characterCacheKey, character, s.cacheTTL); err != nil {
		log.Printf("[ProgressionService] WARNING: не удалось закешировать персонажа: %v", err)
	}
	return character, nil
}

// RecordStudyActivity применяет завершенную учебную сессию к персонажу:
// начисляет XP, продлевает или сбрасывает серию, сдвигает атрибуты.
// Возвращает начисленный XP.
func (s *ProgressionService) RecordStudyActivity(questionsAnswered, correctAnswers int, timeSpentMs int64, now time.Time) (int, error) {
	if questionsAnswered <= 0 {
		return 0, fmt.Errorf("%w: questionsAnswered must be positive", apperrors.ErrValidation)
	}
	if correctAnswers < 0 || correctAnswers > questionsAnswered {
		return 0, fmt.Errorf("%w: correctAnswers out of range", apperrors.ErrValidation)
	}

	character, err := s.loadOrCreate()
	if err != nil {
		return 0, err
	}

	xp := s.engine.ApplySession(character, questionsAnswered, correctAnswers, timeSpentMs, now)

	if err := s.characterRepo.Save(character); err != nil {
		return 0, fmt.Errorf("failed to save character: %w", err)
	}
	s.invalidateCache()
	return xp, nil
}

// RebuildCharacter пересчитывает персонажа с нуля по журналу результатов.
// Достижения и выполненные вызовы переносятся из текущего снимка.
func (s *ProgressionService) RebuildCharacter(today time.Time) (*entity.Character, error) {
	results, err := s.resultRepo.GetAll()
	if err != nil {
		return nil, err
	}

	previous, err := s.characterRepo.Get()
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	rebuilt := s.engine.RebuildCharacter(results, previous, today)
	if err := s.characterRepo.Save(rebuilt); err != nil {
		return nil, fmt.Errorf("failed to save rebuilt character: %w", err)
	}
	s.invalidateCache()

	log.Printf("[ProgressionService] Персонаж пересчитан по журналу: %d результатов, XP=%d, уровень %d",
		len(results), rebuilt.XP, rebuilt.Level)
	return rebuilt, nil
}

// UnlockAchievement отмечает достижение. Повторная выдача — no-op.
func (s *ProgressionService) UnlockAchievement(id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: achievement id is empty", apperrors.ErrValidation)
	}
	character, err := s.loadOrCreate()
	if err != nil {
		return false, err
	}
	unlocked := character.UnlockAchievement(id)
	if unlocked {
		if err := s.characterRepo.Save(character); err != nil {
			return false, fmt.Errorf("failed to save character: %w", err)
		}
		s.invalidateCache()
	}
	return unlocked, nil
}

// CompleteChallenge отмечает вызов выполненным. Повторная отметка — no-op.
func (s *ProgressionService) CompleteChallenge(id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: challenge id is empty", apperrors.ErrValidation)
	}
	character, err := s.loadOrCreate()
	if err != nil {
		return false, err
	}
	completed := character.CompleteChallenge(id)
	if completed {
		if err := s.characterRepo.Save(character); err != nil {
			return false, fmt.Errorf("failed to save character: %w", err)
		}
		s.invalidateCache()
	}
	return completed, nil
}

func (s *ProgressionService) loadOrCreate() (*entity.Character, error) {
	character, err := s.characterRepo.Get()
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		character = entity.NewCharacter()
		s.engine.RefreshLevel(character)
	}
	return character, nil
}

func (s *ProgressionService) invalidateCache() {
	if err := s.cacheRepo.Delete(characterCacheKey); err != nil {
		log.Printf("[ProgressionService] WARNING: не удалось сбросить кеш персонажа: %v", err)
	}
}
