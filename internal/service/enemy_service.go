package service

import (
	"fmt"
	"log"
	"time"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/repository"
	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/service/battlemanager"
)

// promotionSweepLockKey — ключ блокировки обхода авто-продвижения в Redis
const promotionSweepLockKey = "battle:promotion_sweep:lock"

// EnemyService отвечает за врагов: создание, продвижение, отступление,
// обход авто-продвижения и списки повторений
type EnemyService struct {
	enemyRepo      repository.EnemyRepository
	cacheRepo      repository.CacheRepository
	subjectService *SubjectService
	lifecycle      *battlemanager.Lifecycle
	scheduler      *battlemanager.ReviewScheduler
}

// NewEnemyService создает новый сервис врагов
func NewEnemyService(
	enemyRepo repository.EnemyRepository,
	cacheRepo repository.CacheRepository,
	subjectService *SubjectService,
	lifecycle *battlemanager.Lifecycle,
	scheduler *battlemanager.ReviewScheduler,
) *EnemyService {
	return &EnemyService{
		enemyRepo:      enemyRepo,
		cacheRepo:      cacheRepo,
		subjectService: subjectService,
		lifecycle:      lifecycle,
		scheduler:      scheduler,
	}
}

// GetEnemies возвращает всех врагов
func (s *EnemyService) GetEnemies() ([]entity.Enemy, error) {
	return s.enemyRepo.GetAll()
}

// CreateEnemy создает врага для темы или подтемы. Имя не должно совпадать
// с именем другого врага той же темы (точное сравнение, с учетом регистра).
func (s *EnemyService) CreateEnemy(subjectID, topicID, subTopicID, name string, autoPromote bool) (*entity.Enemy, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: enemy name is empty", apperrors.ErrValidation)
	}

	enemies, err := s.enemyRepo.GetAll()
	if err != nil {
		return nil, err
	}
	for _, existing := range enemies {
		if existing.TopicID == topicID && existing.Name == name {
			return nil, fmt.Errorf("%w: enemy %q", apperrors.ErrDuplicateName, name)
		}
	}

	enemy := entity.NewEnemy(subjectID, topicID, subTopicID, name, autoPromote)

	// Проверяем, что тема существует (пустой пул допускается при создании;
	// он блокирует только старт боя)
	if _, err := s.subjectService.QuestionPool(enemy); err != nil {
		return nil, err
	}

	enemies = append(enemies, *enemy)
	if err := s.enemyRepo.SaveAll(enemies); err != nil {
		return nil, err
	}

	log.Printf("[EnemyService] Создан враг %q (%s) для темы %s", name, enemy.ID, topicID)
	return enemy, nil
}

// PromoteEnemy вручную продвигает врага в бой.
// Продвижение не-ready врага возвращает ErrEnemyNotPromotable (не фатально).
func (s *EnemyService) PromoteEnemy(enemyID string) (*entity.Enemy, error) {
	enemy, err := s.enemyRepo.GetByID(enemyID)
	if err != nil {
		return nil, err
	}

	updated, promoted := s.lifecycle.Promote(*enemy, time.Now())
	if !promoted {
		return enemy, ErrEnemyNotPromotable
	}

	if err := s.enemyRepo.Update(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RetreatEnemy возвращает врага с поля боя в ready
func (s *EnemyService) RetreatEnemy(enemyID string) (*entity.Enemy, error) {
	enemy, err := s.enemyRepo.GetByID(enemyID)
	if err != nil {
		return nil, err
	}

	updated, retreated := s.lifecycle.Retreat(*enemy, time.Now())
	if !retreated {
		return enemy, ErrEnemyNotRetreatable
	}

	if err := s.enemyRepo.Update(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CheckReadyEnemies выполняет обход авто-продвижения по всем врагам.
// Обход защищен блокировкой в Redis от конкурентных запусков таймера;
// повторный запуск без прошедшего времени ничего не меняет (идемпотентность
// обеспечена на уровне машины состояний). Возвращает число продвинутых врагов.
func (s *EnemyService) CheckReadyEnemies(now time.Time) (int, error) {
	acquired, err := s.cacheRepo.SetNX(promotionSweepLockKey, "1", time.Minute)
	if err != nil {
		// Redis недоступен: обход все равно безопасен благодаря идемпотентности
		log.Printf("[EnemyService] WARNING: не удалось взять блокировку обхода: %v", err)
	} else if !acquired {
		return 0, ErrSweepAlreadyRunning
	} else {
		defer func() {
			if errDel := s.cacheRepo.Delete(promotionSweepLockKey); errDel != nil {
				log.Printf("[EnemyService] WARNING: не удалось снять блокировку обхода: %v", errDel)
			}
		}()
	}

	enemies, err := s.enemyRepo.GetAll()
	if err != nil {
		return 0, err
	}

	changed := false
	promoted := 0
	for i := range enemies {
		updated, touched := s.lifecycle.CheckReadyEnemy(enemies[i], now)
		if !touched {
			continue
		}
		if updated.Status == entity.EnemyStatusBattle && enemies[i].Status == entity.EnemyStatusReady {
			promoted++
		}
		enemies[i] = updated
		changed = true
	}

	if changed {
		if err := s.enemyRepo.SaveAll(enemies); err != nil {
			return 0, err
		}
	}

	log.Printf("[EnemyService] Обход авто-продвижения завершен: продвинуто %d", promoted)
	return promoted, nil
}

// ReviewsDueToday возвращает врагов, чье повторение наступило
func (s *EnemyService) ReviewsDueToday(today time.Time) ([]entity.Enemy, error) {
	enemies, err := s.enemyRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return s.scheduler.EnemiesDueToday(enemies, today), nil
}

// ReviewsDueFuture возвращает врагов с повторением в будущем
func (s *EnemyService) ReviewsDueFuture(today time.Time) ([]entity.Enemy, error) {
	enemies, err := s.enemyRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return s.scheduler.EnemiesDueFuture(enemies, today), nil
}
