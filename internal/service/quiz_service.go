package service

import (
	"fmt"
	"log"
	"time"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/repository"
	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/service/battlemanager"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/service/progression"
)

// QuizService отвечает за бои: старт сессии и применение результата.
// Сессия живет на клиенте; брошенная сессия не оставляет следов —
// ни записи в журнале, ни изменения состояния врага.
type QuizService struct {
	enemyRepo          repository.EnemyRepository
	resultRepo         repository.QuizResultRepository
	subjectService     *SubjectService
	progressionService *ProgressionService
	lifecycle          *battlemanager.Lifecycle
}

// NewQuizService создает новый сервис боев
func NewQuizService(
	enemyRepo repository.EnemyRepository,
	resultRepo repository.QuizResultRepository,
	subjectService *SubjectService,
	progressionService *ProgressionService,
	lifecycle *battlemanager.Lifecycle,
) *QuizService {
	return &QuizService{
		enemyRepo:          enemyRepo,
		resultRepo:         resultRepo,
		subjectService:     subjectService,
		progressionService: progressionService,
		lifecycle:          lifecycle,
	}
}

// StartQuiz возвращает пул вопросов врага для новой сессии.
// Пустой пул — ErrEmptyQuestionPool, состояние не меняется.
func (s *QuizService) StartQuiz(enemyID string) ([]entity.Question, error) {
	enemy, err := s.enemyRepo.GetByID(enemyID)
	if err != nil {
		return nil, err
	}

	pool, err := s.subjectService.QuestionPool(enemy)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: enemy %s", apperrors.ErrEmptyQuestionPool, enemyID)
	}
	return pool, nil
}

// CompleteQuiz применяет завершенную сессию: строит валидированный
// QuizResult, дописывает его в журнал, проводит переход жизненного цикла
// врага (вместе с планированием повторений — атомарно для вызывающего)
// и обновляет снимок персонажа. Возвращает запись результата и новое
// состояние врага.
func (s *QuizService) CompleteQuiz(enemyID string, answers []entity.QuizAnswer, timeSpentMs int64, date time.Time) (*entity.QuizResult, *entity.Enemy, error) {
	if len(answers) == 0 {
		return nil, nil, fmt.Errorf("%w: session has no answers", apperrors.ErrInvalidQuizResult)
	}

	enemy, err := s.enemyRepo.GetByID(enemyID)
	if err != nil {
		return nil, nil, err
	}

	// Переносим сложность из банка вопросов в записи ответов: сложность
	// хранится явно, а не выводится повторно при каждом пересчете
	index, err := s.subjectService.QuestionIndex()
	if err != nil {
		return nil, nil, err
	}
	correct := 0
	for i := range answers {
		if q, ok := index[answers[i].QuestionID]; ok && answers[i].Difficulty == "" {
			answers[i].Difficulty = q.Difficulty
		}
		if answers[i].Correct {
			correct++
		}
	}

	confidence := progression.ConfidenceScore(answers)
	result, err := entity.NewQuizResult(enemyID, correct, len(answers), confidence, timeSpentMs, answers, date)
	if err != nil {
		return nil, nil, err
	}

	// Журнал — источник истины: сначала дописываем результат
	if err := s.resultRepo.Append(result); err != nil {
		return nil, nil, fmt.Errorf("failed to append quiz result: %w", err)
	}

	// Переход жизненного цикла вместе с планированием повторений
	updated := s.lifecycle.ApplyQuizResult(*enemy, result, date)
	if err := s.enemyRepo.Update(&updated); err != nil {
		return nil, nil, fmt.Errorf("failed to update enemy after quiz: %w", err)
	}

	// Снимок персонажа — кеш: ошибка его обновления не отменяет результат
	if _, err := s.progressionService.RecordStudyActivity(len(answers), correct, timeSpentMs, date); err != nil {
		log.Printf("[QuizService] WARNING: не удалось обновить персонажа после боя %s: %v", enemyID, err)
	}

	log.Printf("[QuizService] Бой врага %s завершен: %d/%d (%.0f%%), статус %s",
		enemyID, correct, len(answers), result.AccuracyPercent(), updated.Status)
	return result, &updated, nil
}
